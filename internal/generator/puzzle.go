package generator

import (
	"encoding/json"

	"github.com/mljr/sudokupress/internal/board"
	"github.com/mljr/sudokupress/internal/profile"
)

// Puzzle is a finished, verified puzzle: the given grid as printed, the
// unique solution as printed in the answer key, and labeling metadata.
// It is immutable once returned; ownership passes to the caller.
type Puzzle struct {
	Size       int                `json:"size"`
	BoxRows    int                `json:"boxRows"`
	BoxCols    int                `json:"boxCols"`
	Difficulty profile.Difficulty `json:"difficulty"`
	Givens     [][]int            `json:"givens"`
	Solution   [][]int            `json:"solution"`
	Clues      int                `json:"clues"`
	// Target is the clue count the digger aimed for. Clues above Target
	// means the pass stopped early but still landed inside the range.
	Target int   `json:"target"`
	Seed   int64 `json:"seed"`
}

func newPuzzle(givens, solution *board.Grid, d profile.Difficulty, target int, seed int64) *Puzzle {
	dim := givens.Dim()
	return &Puzzle{
		Size:       dim.Size,
		BoxRows:    dim.BoxRows,
		BoxCols:    dim.BoxCols,
		Difficulty: d,
		Givens:     givens.Rows(),
		Solution:   solution.Rows(),
		Clues:      givens.CountGivens(),
		Target:     target,
		Seed:       seed,
	}
}

// ToJSON converts the puzzle to JSON bytes.
func (p *Puzzle) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// FromJSON creates a Puzzle from JSON bytes.
func FromJSON(data []byte) (*Puzzle, error) {
	var p Puzzle
	err := json.Unmarshal(data, &p)
	return &p, err
}

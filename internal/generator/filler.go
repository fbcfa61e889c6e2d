package generator

import (
	"math/rand"

	"github.com/mljr/sudokupress/internal/board"
	"github.com/mljr/sudokupress/internal/solver"
)

// Fill produces one complete valid grid of the given size by solving an
// empty grid with a randomized candidate order, so repeated calls with
// different rng states yield different grids. The rng is owned by the
// caller; parallel fills must each bring their own.
func Fill(size int, rng *rand.Rand) (*board.Grid, error) {
	g, err := board.New(size)
	if err != nil {
		return nil, err
	}
	ok, err := solver.New().FindOne(g, rng)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A completion exists for every supported size, so a dead end
		// here means corrupted state rather than bad luck.
		return nil, ErrFillFault
	}
	return g, nil
}

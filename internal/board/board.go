package board

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// Dimensions describes the box geometry of a grid. Every supported size
// factors into boxRows*boxCols == Size (9 -> 3x3, 6 -> 2x3, 16 -> 4x4).
type Dimensions struct {
	Size    int `json:"size"`
	BoxRows int `json:"boxRows"`
	BoxCols int `json:"boxCols"`
}

// DimensionsFor returns the box geometry for a supported grid size.
func DimensionsFor(size int) (Dimensions, error) {
	switch size {
	case 6:
		return Dimensions{Size: 6, BoxRows: 2, BoxCols: 3}, nil
	case 9:
		return Dimensions{Size: 9, BoxRows: 3, BoxCols: 3}, nil
	case 16:
		return Dimensions{Size: 16, BoxRows: 4, BoxCols: 4}, nil
	default:
		return Dimensions{}, fmt.Errorf("unsupported grid size %d (want 6, 9 or 16)", size)
	}
}

// SupportedSizes lists the grid sizes the engine can generate.
var SupportedSizes = []int{6, 9, 16}

// Grid is an N×N board together with per-row/column/box availability
// masks. Cells hold 0 (empty) or a symbol in [1, N]. The masks are
// derived state: bit v-1 of rowMask[r] is set iff symbol v is already
// placed somewhere in row r, and likewise for columns and boxes. Place
// and Remove keep cells and masks in step; no other code mutates either.
type Grid struct {
	dim      Dimensions
	cells    []int
	rowMask  []uint32
	colMask  []uint32
	boxMask  []uint32
	fullMask uint32
	filled   int
}

// New returns an empty grid of the given size.
func New(size int) (*Grid, error) {
	dim, err := DimensionsFor(size)
	if err != nil {
		return nil, err
	}
	return &Grid{
		dim:      dim,
		cells:    make([]int, size*size),
		rowMask:  make([]uint32, size),
		colMask:  make([]uint32, size),
		boxMask:  make([]uint32, size),
		fullMask: uint32(1)<<uint(size) - 1,
	}, nil
}

// FromRows builds a grid from row-major values (0 = empty). It rejects
// out-of-range symbols and any row/column/box duplicate among the
// filled cells.
func FromRows(rows [][]int) (*Grid, error) {
	g, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.dim.Size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), g.dim.Size)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if v < 1 || v > g.dim.Size {
				return nil, fmt.Errorf("cell (%d,%d): symbol %d out of range [1,%d]", r, c, v, g.dim.Size)
			}
			if !g.Place(r, c, v) {
				return nil, fmt.Errorf("cell (%d,%d): symbol %d conflicts with an earlier cell", r, c, v)
			}
		}
	}
	return g, nil
}

// Dim returns the grid's box geometry.
func (g *Grid) Dim() Dimensions { return g.dim }

// Size returns N for an N×N grid.
func (g *Grid) Size() int { return g.dim.Size }

// Get returns the symbol at (r, c), 0 if the cell is empty.
func (g *Grid) Get(r, c int) int { return g.cells[r*g.dim.Size+c] }

// BoxIndex returns the index of the box containing (r, c).
func (g *Grid) BoxIndex(r, c int) int {
	return (r/g.dim.BoxRows)*(g.dim.Size/g.dim.BoxCols) + c/g.dim.BoxCols
}

// Candidates returns the mask of symbols still allowed at (r, c) by the
// cell's row, column and box. Bit v-1 set means symbol v is available.
func (g *Grid) Candidates(r, c int) uint32 {
	return g.fullMask &^ (g.rowMask[r] | g.colMask[c] | g.boxMask[g.BoxIndex(r, c)])
}

// CandidateCount returns the number of symbols allowed at (r, c).
func (g *Grid) CandidateCount(r, c int) int {
	return bits.OnesCount32(g.Candidates(r, c))
}

// Place writes v at (r, c) and claims it in the row, column and box
// masks. It reports false, leaving the grid untouched, if the cell is
// occupied or v is not among the cell's candidates.
func (g *Grid) Place(r, c, v int) bool {
	idx := r*g.dim.Size + c
	if g.cells[idx] != 0 {
		return false
	}
	bit := uint32(1) << uint(v-1)
	if g.Candidates(r, c)&bit == 0 {
		return false
	}
	g.cells[idx] = v
	g.rowMask[r] |= bit
	g.colMask[c] |= bit
	g.boxMask[g.BoxIndex(r, c)] |= bit
	g.filled++
	return true
}

// Remove empties (r, c) and releases its symbol back to the row, column
// and box masks. Removing an already-empty cell is a no-op.
func (g *Grid) Remove(r, c int) {
	idx := r*g.dim.Size + c
	v := g.cells[idx]
	if v == 0 {
		return
	}
	bit := uint32(1) << uint(v-1)
	g.cells[idx] = 0
	g.rowMask[r] &^= bit
	g.colMask[c] &^= bit
	g.boxMask[g.BoxIndex(r, c)] &^= bit
	g.filled--
}

// IsComplete reports whether every cell is filled.
func (g *Grid) IsComplete() bool { return g.filled == len(g.cells) }

// CountGivens returns the number of filled cells.
func (g *Grid) CountGivens() int { return g.filled }

// Clone returns an independent deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		dim:      g.dim,
		cells:    make([]int, len(g.cells)),
		rowMask:  make([]uint32, len(g.rowMask)),
		colMask:  make([]uint32, len(g.colMask)),
		boxMask:  make([]uint32, len(g.boxMask)),
		fullMask: g.fullMask,
		filled:   g.filled,
	}
	copy(c.cells, g.cells)
	copy(c.rowMask, g.rowMask)
	copy(c.colMask, g.colMask)
	copy(c.boxMask, g.boxMask)
	return c
}

// Rows returns the cell values as a fresh row-major matrix.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.dim.Size)
	for r := range rows {
		rows[r] = make([]int, g.dim.Size)
		copy(rows[r], g.cells[r*g.dim.Size:(r+1)*g.dim.Size])
	}
	return rows
}

// Valid rechecks the no-duplicate invariant from the raw cells alone,
// ignoring the incremental masks. Empty cells are skipped, so a partial
// grid can be valid.
func (g *Grid) Valid() bool {
	n := g.dim.Size
	rowSeen := make([]uint32, n)
	colSeen := make([]uint32, n)
	boxSeen := make([]uint32, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := g.Get(r, c)
			if v == 0 {
				continue
			}
			bit := uint32(1) << uint(v-1)
			b := g.BoxIndex(r, c)
			if rowSeen[r]&bit != 0 || colSeen[c]&bit != 0 || boxSeen[b]&bit != 0 {
				return false
			}
			rowSeen[r] |= bit
			colSeen[c] |= bit
			boxSeen[b] |= bit
		}
	}
	return true
}

// ToJSON serializes the grid's rows.
func (g *Grid) ToJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// FromJSON builds a grid from the output of ToJSON.
func FromJSON(data []byte) (*Grid, error) {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return FromRows(rows)
}

// Package render draws grids as box-drawing ASCII for terminal preview.
// It is a collaborator of the engine: it only reads Puzzle values and
// never feeds anything back into generation.
package render

import (
	"fmt"
	"strings"

	"github.com/mljr/sudokupress/internal/board"
	"github.com/mljr/sudokupress/internal/generator"
)

// Grid renders row-major cell values with borders on the box
// boundaries. Empty cells print as "·". Sizes above 9 use one hex
// digit per cell (symbol v prints as v-1, so 16×16 runs 0..F) to keep
// the columns aligned on paper-width terminals.
func Grid(rows [][]int, dim board.Dimensions) string {
	maxDigits := 1
	if dim.Size <= 9 {
		maxDigits = len(fmt.Sprint(dim.Size))
	}
	var b strings.Builder

	writeBorder := func(left, mid, right string) {
		b.WriteString(left)
		for c := 0; c < dim.Size; c++ {
			b.WriteString(strings.Repeat("─", maxDigits+2))
			if (c+1)%dim.BoxCols == 0 && c < dim.Size-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		b.WriteString("\n")
	}

	writeBorder("┌", "┬", "┐")
	for r := 0; r < dim.Size; r++ {
		b.WriteString("│")
		for c := 0; c < dim.Size; c++ {
			v := rows[r][c]
			if v == 0 {
				b.WriteString(fmt.Sprintf(" %*s ", maxDigits, "·"))
			} else {
				b.WriteString(fmt.Sprintf(" %*s ", maxDigits, symbol(v, dim.Size)))
			}
			if (c+1)%dim.BoxCols == 0 && c < dim.Size-1 {
				b.WriteString("│")
			}
		}
		b.WriteString("│\n")
		if (r+1)%dim.BoxRows == 0 && r < dim.Size-1 {
			writeBorder("├", "┼", "┤")
		}
	}
	writeBorder("└", "┴", "┘")
	return b.String()
}

// Puzzle renders the given grid of a puzzle.
func Puzzle(p *generator.Puzzle) string {
	return Grid(p.Givens, dimOf(p))
}

// Solution renders the answer-key grid of a puzzle.
func Solution(p *generator.Puzzle) string {
	return Grid(p.Solution, dimOf(p))
}

func dimOf(p *generator.Puzzle) board.Dimensions {
	return board.Dimensions{Size: p.Size, BoxRows: p.BoxRows, BoxCols: p.BoxCols}
}

func symbol(v, size int) string {
	if size > 9 {
		return fmt.Sprintf("%X", v-1)
	}
	return fmt.Sprint(v)
}

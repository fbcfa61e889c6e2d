package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mljr/sudokupress/internal/board"
)

func TestGridDrawsBoxBorders(t *testing.T) {
	dim, err := board.DimensionsFor(6)
	require.NoError(t, err)

	rows := [][]int{
		{1, 2, 3, 4, 5, 6},
		{4, 5, 6, 1, 2, 3},
		{2, 3, 1, 5, 6, 4},
		{5, 6, 4, 2, 3, 1},
		{3, 1, 2, 6, 4, 5},
		{6, 4, 5, 3, 1, 2},
	}
	out := Grid(rows, dim)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// 6 cell rows, 2 inner separators (after rows 2 and 4), 2 outer borders.
	assert.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[3], "┼", "separator after the first band")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "└"))
	assert.NotContains(t, out, "·")
}

func TestGridUsesHexSymbolsFor16(t *testing.T) {
	dim, err := board.DimensionsFor(16)
	require.NoError(t, err)
	rows := make([][]int, 16)
	for r := range rows {
		rows[r] = make([]int, 16)
	}
	for c := 0; c < 16; c++ {
		rows[0][c] = c + 1 // symbols 1..16 render as hex 0..F
	}

	out := Grid(rows, dim)
	assert.Contains(t, out, " 0 ")
	assert.Contains(t, out, " 9 ")
	assert.Contains(t, out, " A ")
	assert.Contains(t, out, " F ")
	assert.NotContains(t, out, "16", "no two-digit cells in hex mode")

	// Single-character cells keep every row the same width.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, line := range lines[1:] {
		assert.Equal(t, utf8.RuneCountInString(lines[0]), utf8.RuneCountInString(line))
	}
}

func TestGridMarksEmptyCells(t *testing.T) {
	dim, err := board.DimensionsFor(9)
	require.NoError(t, err)
	rows := make([][]int, 9)
	for r := range rows {
		rows[r] = make([]int, 9)
	}
	rows[0][0] = 5

	out := Grid(rows, dim)
	assert.Contains(t, out, "·")
	assert.Contains(t, out, "5")
}

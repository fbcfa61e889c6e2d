package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mljr/sudokupress/internal/board"
)

// A classic solvable 9x9 with a unique solution (0 = empty).
var sample = [][]int{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

func sampleGrid(t *testing.T) *board.Grid {
	t.Helper()
	g, err := board.FromRows(sample)
	require.NoError(t, err)
	return g
}

func TestFindOneSolvesSample(t *testing.T) {
	g := sampleGrid(t)
	givens := g.Rows()

	s := New()
	ok, err := s.FindOne(g, nil)
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, g.IsComplete())
	assert.True(t, g.Valid())
	assert.Positive(t, s.Steps())
	// Givens survive the solve.
	for r := range givens {
		for c, v := range givens[r] {
			if v != 0 {
				assert.Equal(t, v, g.Get(r, c))
			}
		}
	}
}

func TestFindOneRandomOrderDeterministic(t *testing.T) {
	g1, err := board.New(9)
	require.NoError(t, err)
	g2, err := board.New(9)
	require.NoError(t, err)

	ok, err := New().FindOne(g1, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = New().FindOne(g2, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, g1.Rows(), g2.Rows(), "same seed must reproduce the same grid")
}

func TestCompleteGridIsItsOwnUniqueSolution(t *testing.T) {
	g, err := board.New(9)
	require.NoError(t, err)
	ok, err := New().FindOne(g, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.True(t, ok)
	want := g.Rows()

	ok, err = New().FindOne(g, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, g.Rows())

	count, err := New().CountUpTo(g, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, want, g.Rows(), "counting must restore the grid")
}

func TestCountUpToStopsAtCap(t *testing.T) {
	g, err := board.New(6)
	require.NoError(t, err)

	s := New()
	count, err := s.CountUpTo(g, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "empty grid has many solutions, cap must hold")
	assert.Equal(t, 0, g.CountGivens(), "grid restored after counting")

	count, err = New().CountUpTo(sampleGrid(t), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNoSolutionIsNotAnError(t *testing.T) {
	g, err := board.New(9)
	require.NoError(t, err)
	// Row 0 holds 1..8 in columns 0..7 and a 9 sits elsewhere in
	// column 8, leaving (0,8) with zero candidates.
	for c := 0; c < 8; c++ {
		require.True(t, g.Place(0, c, c+1))
	}
	require.True(t, g.Place(8, 8, 9))

	ok, err := New().FindOne(g, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := New().CountUpTo(g, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStepLimitAborts(t *testing.T) {
	g, err := board.New(9)
	require.NoError(t, err)

	s := New()
	s.SetStepLimit(1)
	ok, err := s.FindOne(g, nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, 0, g.CountGivens(), "aborted search must unwind its placements")

	s = New()
	s.SetStepLimit(5)
	_, err = s.CountUpTo(g, 2)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, 0, g.CountGivens())
}

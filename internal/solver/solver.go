// Package solver implements the backtracking search shared by grid
// filling and uniqueness verification. One recursive core serves two
// modes: FindOne returns the first complete assignment reachable from
// the current grid state, CountUpTo counts solutions but abandons the
// search as soon as the cap is reached.
package solver

import (
	"errors"
	"math/bits"
	"math/rand"

	"github.com/mljr/sudokupress/internal/board"
)

// ErrBudgetExceeded reports that the search was abandoned because the
// step limit ran out. It is distinct from the ordinary no-solution
// outcome, which is not an error at all.
var ErrBudgetExceeded = errors.New("solver: step budget exceeded")

// Solver carries the step counter and optional step limit across one or
// more searches. A zero limit means unlimited. Solvers are cheap; use a
// fresh one per concurrent task.
type Solver struct {
	steps int
	limit int
}

// New returns a solver with no step limit.
func New() *Solver { return &Solver{} }

// SetStepLimit caps the cumulative number of candidate placements the
// solver will try before giving up with ErrBudgetExceeded. n <= 0
// removes the cap.
func (s *Solver) SetStepLimit(n int) { s.limit = n }

// Steps returns the cumulative number of candidate placements tried.
func (s *Solver) Steps() int { return s.steps }

// FindOne searches from the current state of g and, on success, leaves
// g mutated into the first complete assignment found. Candidate symbols
// are tried in a fresh random permutation per decision point when rng
// is non-nil, in ascending order otherwise. The boolean reports whether
// a solution was found; g is restored to its input state when it was
// not.
func (s *Solver) FindOne(g *board.Grid, rng *rand.Rand) (bool, error) {
	r, c, mask, done := selectCell(g)
	if done {
		return true, nil
	}
	for _, v := range s.order(mask, rng) {
		if s.limit > 0 && s.steps >= s.limit {
			return false, ErrBudgetExceeded
		}
		s.steps++
		g.Place(r, c, v)
		ok, err := s.FindOne(g, rng)
		if ok {
			return true, nil
		}
		g.Remove(r, c)
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

// CountUpTo counts completions of the current state of g, stopping as
// soon as limit solutions have been seen. Exact counts above the cap
// are never computed; the uniqueness test is CountUpTo(g, 2) == 1.
// Candidates are tried in ascending order so verification is
// deterministic. g is always restored to its input state.
func (s *Solver) CountUpTo(g *board.Grid, limit int) (int, error) {
	r, c, mask, done := selectCell(g)
	if done {
		return 1, nil
	}
	count := 0
	for mask != 0 {
		bit := mask & -mask
		mask &^= bit
		if s.limit > 0 && s.steps >= s.limit {
			return count, ErrBudgetExceeded
		}
		s.steps++
		v := bits.TrailingZeros32(bit) + 1
		g.Place(r, c, v)
		n, err := s.CountUpTo(g, limit-count)
		g.Remove(r, c)
		count += n
		if err != nil {
			return count, err
		}
		if count >= limit {
			return count, nil
		}
	}
	return count, nil
}

// selectCell picks the next empty cell by minimum remaining values,
// ties broken by lowest row-major index. done is true when no empty
// cell remains. A zero-candidate cell is returned immediately: the
// search below it is dead and the caller's value loop runs zero times.
func selectCell(g *board.Grid) (row, col int, mask uint32, done bool) {
	n := g.Size()
	best := n + 1
	found := false
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if g.Get(r, c) != 0 {
				continue
			}
			m := g.Candidates(r, c)
			count := bits.OnesCount32(m)
			if count == 0 {
				return r, c, 0, false
			}
			if count < best {
				row, col, mask, best = r, c, m, count
				found = true
				if count == 1 {
					return row, col, mask, false
				}
			}
		}
	}
	return row, col, mask, !found
}

// order expands a candidate mask into symbol values, ascending when rng
// is nil, freshly shuffled otherwise.
func (s *Solver) order(mask uint32, rng *rand.Rand) []int {
	vals := make([]int, 0, bits.OnesCount32(mask))
	for mask != 0 {
		bit := mask & -mask
		mask &^= bit
		vals = append(vals, bits.TrailingZeros32(bit)+1)
	}
	if rng != nil {
		rng.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
	}
	return vals
}

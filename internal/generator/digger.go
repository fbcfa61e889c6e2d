package generator

import (
	"errors"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/mljr/sudokupress/internal/board"
	"github.com/mljr/sudokupress/internal/profile"
	"github.com/mljr/sudokupress/internal/solver"
)

// digResult carries the outcome of one digging pass.
type digResult struct {
	givens *board.Grid
	steps  int
}

// dig removes cells from a copy of the complete grid until the clue
// count reaches target, keeping only removals that leave the puzzle
// uniquely solvable. Each tentative removal is verified by counting
// solutions up to 2 with ascending candidate order; a second solution
// means the cell is restored. The pass fails with ErrBudgetExhausted
// when the solver step budget runs out while the clue count is still
// above the profile range's upper bound; if the count is already inside
// the range the puzzle is good enough and is returned as is.
func dig(full *board.Grid, entry profile.Entry, target int, rng *rand.Rand, log *logrus.Entry) (digResult, error) {
	work := full.Clone()
	n := work.Size()
	positions := rng.Perm(n * n)

	s := solver.New()
	s.SetStepLimit(entry.Budget)

	for _, pos := range positions {
		if work.CountGivens() <= target {
			break
		}
		r, c := pos/n, pos%n
		v := work.Get(r, c)
		if v == 0 {
			continue
		}
		work.Remove(r, c)
		count, err := s.CountUpTo(work, 2)
		if err != nil {
			if !errors.Is(err, solver.ErrBudgetExceeded) {
				return digResult{}, err
			}
			work.Place(r, c, v)
			break
		}
		if count != 1 {
			work.Place(r, c, v)
		}
	}

	res := digResult{givens: work, steps: s.Steps()}
	if work.CountGivens() > entry.Givens.Max {
		log.WithFields(logrus.Fields{
			"givens": work.CountGivens(),
			"target": target,
			"steps":  s.Steps(),
		}).Debug("digging pass left too many givens")
		return res, ErrBudgetExhausted
	}
	return res, nil
}

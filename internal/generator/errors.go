package generator

import (
	"errors"
	"fmt"

	"github.com/mljr/sudokupress/internal/profile"
)

// ErrBudgetExhausted reports that a digging pass ran out of its solver
// step budget before the puzzle reached the target clue range. The
// façade recovers from it by retrying with a fresh complete grid.
var ErrBudgetExhausted = errors.New("digger: effort budget exhausted before reaching target givens")

// ErrFillFault reports that the filler could not complete a grid. A
// valid completion exists for every supported size, so this indicates a
// corrupted grid or a logic error, not an ordinary search dead end.
var ErrFillFault = errors.New("filler: no completion found for supported size")

// GenerationError is the definitive failure returned once every attempt
// for a (size, difficulty) request has been exhausted. The caller
// decides whether to relax the budget, retry later, or skip.
type GenerationError struct {
	Size       int
	Difficulty profile.Difficulty
	Attempts   int
	Err        error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating %dx%d %s puzzle: %d attempt(s) exhausted: %v",
		e.Size, e.Size, e.Difficulty, e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

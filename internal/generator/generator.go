// Package generator produces print-ready Sudoku puzzles: a complete
// random solution grid is built first (filler), then cells are removed
// while uniqueness is re-verified after every removal (digger). The
// Generator façade drives the pair with a retry and budget policy.
package generator

import (
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mljr/sudokupress/internal/profile"
)

// Generator orchestrates Fill → dig per request against a difficulty
// table. It holds no mutable state between calls and is safe for
// concurrent use as long as each call brings its own seed.
type Generator struct {
	profiles profile.Table
	log      *logrus.Entry
}

// New returns a generator using the given difficulty table, or the
// built-in defaults when nil.
func New(profiles profile.Table) *Generator {
	if profiles == nil {
		profiles = profile.Default()
	}
	return &Generator{
		profiles: profiles,
		log:      logrus.WithField("component", "generator"),
	}
}

// Generate produces one puzzle with a time-based seed.
func (g *Generator) Generate(size int, d profile.Difficulty, maxAttempts int) (*Puzzle, error) {
	return g.GenerateSeeded(size, d, maxAttempts, time.Now().UnixNano())
}

// GenerateSeeded produces one puzzle deterministically from the seed:
// the same seed, size, difficulty and attempt count always yield the
// same puzzle. Each attempt fills a fresh random complete grid and digs
// it; a digging pass that exhausts its budget is retried with the next
// attempt's independently seeded grid, since a different solution grid
// is usually easier to dig. After maxAttempts failures the definitive
// *GenerationError is returned; no partial puzzle ever is.
func (g *Generator) GenerateSeeded(size int, d profile.Difficulty, maxAttempts int, seed int64) (*Puzzle, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	entry, err := g.profiles.Lookup(size, d)
	if err != nil {
		return nil, err
	}

	log := g.log.WithFields(logrus.Fields{"size": size, "difficulty": d})
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		rng := rand.New(rand.NewSource(seed + int64(attempt)))
		target := entry.Givens.Min + rng.Intn(entry.Givens.Max-entry.Givens.Min+1)

		full, err := Fill(size, rng)
		if err != nil {
			// Filler faults are defensive and not retryable.
			return nil, err
		}

		res, err := dig(full, entry, target, rng, log)
		if err != nil {
			if errors.Is(err, ErrBudgetExhausted) {
				log.WithFields(logrus.Fields{"attempt": attempt + 1, "steps": res.steps}).
					Debug("attempt exhausted its budget, refilling")
				lastErr = err
				continue
			}
			return nil, err
		}

		clues := res.givens.CountGivens()
		if clues != target {
			log.WithFields(logrus.Fields{"target": target, "givens": clues}).
				Warn("missed exact clue target, puzzle still within range")
		}
		log.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"givens":  clues,
			"steps":   res.steps,
		}).Debug("puzzle generated")
		return newPuzzle(res.givens, full, d, target, seed), nil
	}

	if lastErr == nil {
		lastErr = ErrBudgetExhausted
	}
	return nil, &GenerationError{Size: size, Difficulty: d, Attempts: maxAttempts, Err: lastErr}
}

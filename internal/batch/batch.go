// Package batch fans a list of puzzle requests out over a bounded
// worker pool. Each task owns its grid, solver and seed, so workers
// share nothing and need no locking; a batch for a whole book is
// embarrassingly parallel.
package batch

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mljr/sudokupress/internal/generator"
	"github.com/mljr/sudokupress/internal/profile"
)

// Request asks for Count puzzles of one (size, difficulty) pair.
type Request struct {
	Size       int                `json:"size"`
	Difficulty profile.Difficulty `json:"difficulty"`
	Count      int                `json:"count"`
}

// Progress reports one finished task to an optional observer.
type Progress struct {
	Done       int
	Total      int
	Size       int
	Difficulty profile.Difficulty
	Failed     bool
}

// Options tunes a batch run.
type Options struct {
	// Workers bounds the pool; 0 means min(tasks, NumCPU).
	Workers int
	// Seed makes the whole batch reproducible. Task i derives its own
	// independent rng from Seed+i, so puzzles do not correlate across
	// workers. 0 falls back to a time-based seed per run.
	Seed int64
	// MaxAttempts is passed through to the generator per puzzle.
	MaxAttempts int
	// Progress, when non-nil, receives one report per finished task.
	Progress chan<- Progress
}

// Warning records a task whose puzzle missed its exact clue target but
// still landed inside the difficulty range; the book can use it as is,
// the publisher just gets told.
type Warning struct {
	Index      int
	Size       int
	Difficulty profile.Difficulty
	Target     int
	Clues      int
}

// Result collects the batch outcome in request order.
type Result struct {
	Puzzles []*generator.Puzzle
	// Warnings lists tasks that missed their exact clue target.
	Warnings []Warning
	// Failures holds one *generator.GenerationError per task that
	// exhausted its attempts; the corresponding Puzzles slot is nil.
	Failures []error
}

// Failed reports whether any task failed.
func (r *Result) Failed() bool { return len(r.Failures) > 0 }

// missWarning converts a finished puzzle into a target-miss warning,
// reporting false when the task hit its target exactly.
func missWarning(index int, p *generator.Puzzle) (Warning, bool) {
	if p.Clues == p.Target {
		return Warning{}, false
	}
	return Warning{
		Index:      index,
		Size:       p.Size,
		Difficulty: p.Difficulty,
		Target:     p.Target,
		Clues:      p.Clues,
	}, true
}

type task struct {
	index int
	req   Request
	seed  int64
}

// Run generates every requested puzzle. Puzzles are returned in a
// stable order (request order, then puzzle index within the request)
// regardless of worker scheduling. Failed tasks leave nil slots and
// their errors in Result.Failures; the rest of the batch still runs to
// completion so one infeasible request does not waste the others.
func Run(gen *generator.Generator, reqs []Request, opts Options) *Result {
	baseSeed := opts.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	tasks := make([]task, 0)
	idx := 0
	for _, req := range reqs {
		for i := 0; i < req.Count; i++ {
			// Stride the per-task seeds so a task's retry seeds never
			// collide with a neighbour's base seed.
			tasks = append(tasks, task{index: idx, req: req, seed: baseSeed + int64(idx)*1_000_003})
			idx++
		}
	}

	res := &Result{Puzzles: make([]*generator.Puzzle, len(tasks))}
	if len(tasks) == 0 {
		return res
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	log := logrus.WithField("component", "batch")
	log.WithFields(logrus.Fields{"tasks": len(tasks), "workers": workers}).Debug("starting batch")

	taskChan := make(chan task)
	var mu sync.Mutex
	var done int
	var warnings []Warning
	var failures []error
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskChan {
				p, err := gen.GenerateSeeded(t.req.Size, t.req.Difficulty, opts.MaxAttempts, t.seed)
				mu.Lock()
				if err != nil {
					failures = append(failures, err)
					log.WithFields(logrus.Fields{
						"size":       t.req.Size,
						"difficulty": t.req.Difficulty,
					}).WithError(err).Warn("task failed")
				} else {
					res.Puzzles[t.index] = p
					if w, missed := missWarning(t.index, p); missed {
						warnings = append(warnings, w)
					}
				}
				done++
				d := done
				mu.Unlock()
				if opts.Progress != nil {
					opts.Progress <- Progress{
						Done:       d,
						Total:      len(tasks),
						Size:       t.req.Size,
						Difficulty: t.req.Difficulty,
						Failed:     err != nil,
					}
				}
			}
		}()
	}

	for _, t := range tasks {
		taskChan <- t
	}
	close(taskChan)
	wg.Wait()

	// Completion order depends on scheduling; report warnings in task order.
	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Index < warnings[j].Index })

	res.Warnings = warnings
	res.Failures = failures
	return res
}

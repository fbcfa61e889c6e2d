// Package profile holds the difficulty calibration: for every
// (size, difficulty) pair, the target range of given cells and the
// solver-step budget one digging pass may spend. The table is read-only
// configuration; the engine never mutates it.
package profile

import (
	"fmt"
	"os"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/mljr/sudokupress/internal/board"
)

// Difficulty labels the four published tiers.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
	Expert Difficulty = "Expert"
)

// Difficulties lists the tiers in ascending order of hardness.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert}

// ParseDifficulty maps a user-supplied label to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium, Hard or Expert)", s)
}

// Range is an inclusive interval of given-cell counts.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n lies in the range.
func (r Range) Contains(n int) bool { return n >= r.Min && n <= r.Max }

// Entry is the calibration for one (size, difficulty) pair.
type Entry struct {
	// Givens is the acceptable range of clue counts for the tier.
	Givens Range `json:"givens"`
	// Budget caps the solver steps a single digging pass may spend on
	// uniqueness checks before the attempt is abandoned.
	Budget int `json:"budget"`
}

// Table maps grid size to per-tier calibration entries.
type Table map[int]map[Difficulty]Entry

// Default returns the built-in calibration. The clue ranges were tuned
// empirically for print publication; 16×16 needs a far wider absolute
// range than 6×6 for the same perceived difficulty.
func Default() Table {
	return Table{
		6: {
			Easy:   {Givens: Range{Min: 24, Max: 28}, Budget: 200_000},
			Medium: {Givens: Range{Min: 20, Max: 23}, Budget: 200_000},
			Hard:   {Givens: Range{Min: 16, Max: 19}, Budget: 200_000},
			Expert: {Givens: Range{Min: 12, Max: 15}, Budget: 200_000},
		},
		9: {
			Easy:   {Givens: Range{Min: 36, Max: 45}, Budget: 1_000_000},
			Medium: {Givens: Range{Min: 30, Max: 35}, Budget: 1_000_000},
			Hard:   {Givens: Range{Min: 24, Max: 29}, Budget: 1_500_000},
			Expert: {Givens: Range{Min: 17, Max: 23}, Budget: 2_000_000},
		},
		16: {
			Easy:   {Givens: Range{Min: 160, Max: 190}, Budget: 4_000_000},
			Medium: {Givens: Range{Min: 130, Max: 159}, Budget: 6_000_000},
			Hard:   {Givens: Range{Min: 100, Max: 129}, Budget: 8_000_000},
			Expert: {Givens: Range{Min: 80, Max: 99}, Budget: 10_000_000},
		},
	}
}

// Lookup returns the entry for a (size, difficulty) pair.
func (t Table) Lookup(size int, d Difficulty) (Entry, error) {
	tiers, ok := t[size]
	if !ok {
		return Entry{}, fmt.Errorf("no difficulty profile for size %d", size)
	}
	e, ok := tiers[d]
	if !ok {
		return Entry{}, fmt.Errorf("no %s profile for size %d", d, size)
	}
	return e, nil
}

// Validate rejects tables with unsupported sizes, missing tiers or
// nonsensical ranges.
func (t Table) Validate() error {
	for size, tiers := range t {
		if !slice.Contain(board.SupportedSizes, size) {
			return fmt.Errorf("profile size %d is not a supported grid size", size)
		}
		for _, d := range Difficulties {
			e, ok := tiers[d]
			if !ok {
				return fmt.Errorf("size %d: missing %s entry", size, d)
			}
			if e.Givens.Min < 1 || e.Givens.Max < e.Givens.Min || e.Givens.Max > size*size {
				return fmt.Errorf("size %d %s: bad givens range [%d,%d]", size, d, e.Givens.Min, e.Givens.Max)
			}
			if e.Budget <= 0 {
				return fmt.Errorf("size %d %s: budget must be positive", size, d)
			}
		}
	}
	return nil
}

// Load reads a YAML calibration file and overlays it on the defaults,
// so a file only needs to spell out the entries it changes.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading profile file")
	}
	var overlay Table
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, errors.Wrapf(err, "parsing profile file %s", path)
	}
	t := Default()
	for size, tiers := range overlay {
		if _, ok := t[size]; !ok {
			t[size] = map[Difficulty]Entry{}
		}
		for d, e := range tiers {
			t[size][d] = e
		}
	}
	if err := t.Validate(); err != nil {
		return nil, errors.Wrapf(err, "profile file %s", path)
	}
	return t, nil
}

// Package db uploads finished puzzles to a PocketBase instance so the
// layout tooling can pull them per book. It consumes Puzzle values as
// an external collaborator; the engine itself never imports it.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/habibrosyad/pocketbase-go-sdk"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mljr/sudokupress/internal/generator"
)

const collection = "puzzles"

// PuzzleRecord mirrors a record in the puzzles collection.
type PuzzleRecord struct {
	ID         string `json:"id"`
	Puzzle     string `json:"puzzle"` // generator.Puzzle as JSON
	Difficulty string `json:"difficulty"`
	Size       string `json:"size"`
	Clues      int    `json:"clues"`
	Created    string `json:"created"`
	Updated    string `json:"updated"`
}

// Store wraps an authenticated PocketBase client.
type Store struct {
	client *pocketbase.Client
	log    *logrus.Entry
}

// New builds a store for the given PocketBase instance with superuser
// credentials. Call Authenticate before first use.
func New(url, email, password string) *Store {
	return &Store{
		client: pocketbase.NewClient(url,
			pocketbase.WithSuperuserEmailPassword(email, password)),
		log: logrus.WithField("component", "db"),
	}
}

// Authenticate authorizes the client and keeps the session alive with a
// background re-authentication ticker.
func (s *Store) Authenticate() error {
	if err := s.client.Authorize(); err != nil {
		return errors.Wrap(err, "pocketbase authentication failed")
	}
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		for range ticker.C {
			if err := s.client.Authorize(); err != nil {
				s.log.WithError(err).Warn("re-authentication failed")
			} else {
				s.log.Debug("re-authenticated with PocketBase")
			}
		}
	}()
	return nil
}

// Upload stores one puzzle under the given record ID. IDs longer than
// 15 characters are rejected by PocketBase, so they are refused here.
func (s *Store) Upload(id string, p *generator.Puzzle) (*pocketbase.ResponseCreate, error) {
	if id == "" || len(id) > 15 {
		return nil, fmt.Errorf("invalid record ID %q: must be 1-15 characters", id)
	}
	exists, err := s.Exists(id)
	if err != nil {
		return nil, errors.Wrap(err, "checking for existing record")
	}
	if exists {
		return nil, fmt.Errorf("puzzle with ID %s already exists", id)
	}

	payload, err := p.ToJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshaling puzzle")
	}
	data := map[string]any{
		"id":         id,
		"puzzle":     string(payload),
		"difficulty": string(p.Difficulty),
		"size":       fmt.Sprintf("%d", p.Size),
		"clues":      p.Clues,
	}
	record, err := s.client.Create(collection, data)
	if err != nil {
		return nil, errors.Wrapf(err, "uploading puzzle %s", id)
	}
	return &record, nil
}

// Get loads one puzzle by record ID.
func (s *Store) Get(id string) (*generator.Puzzle, error) {
	record, err := s.client.One(collection, id)
	if err != nil {
		return nil, errors.Wrapf(err, "loading puzzle %s", id)
	}
	raw, ok := record["puzzle"].(string)
	if !ok {
		return nil, fmt.Errorf("record %s has no puzzle payload", id)
	}
	p, err := generator.FromJSON([]byte(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "unmarshaling puzzle %s", id)
	}
	return p, nil
}

// List pages through stored puzzles. Filters may constrain difficulty
// and size; sortOrder is "asc" or "desc".
func (s *Store) List(page, perPage int, filters map[string]string, sortField, sortOrder string) (*pocketbase.ResponseList[map[string]any], error) {
	var rules []string
	if diff, ok := filters["difficulty"]; ok {
		rules = append(rules, fmt.Sprintf("difficulty = %q", diff))
	}
	if size, ok := filters["size"]; ok {
		rules = append(rules, fmt.Sprintf("size = %q", size))
	}

	sort := sortField
	if sortOrder == "desc" {
		sort = "-" + sortField
	}
	params := pocketbase.ParamsList{
		Page:    page,
		Size:    perPage,
		Sort:    sort,
		Filters: strings.Join(rules, " && "),
	}
	result, err := s.client.List(collection, params)
	if err != nil {
		return nil, errors.Wrap(err, "listing puzzles")
	}
	return &result, nil
}

// Exists reports whether a record with the ID is already stored.
func (s *Store) Exists(id string) (bool, error) {
	_, err := s.client.One(collection, id)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Command sudokupress generates print-ready Sudoku puzzles from the
// terminal and optionally uploads them to PocketBase for the layout
// tooling to consume.
package main

import (
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mljr/sudokupress/db"
	"github.com/mljr/sudokupress/internal/batch"
	"github.com/mljr/sudokupress/internal/generator"
	"github.com/mljr/sudokupress/internal/profile"
	"github.com/mljr/sudokupress/internal/render"
)

var (
	flagVerbose  bool
	flagProfiles string
)

func main() {
	root := &cobra.Command{
		Use:           "sudokupress",
		Short:         "Generate uniquely-solvable Sudoku puzzles for print",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if err := godotenv.Load(); err != nil {
				logrus.Debug("no .env file found")
			}
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagProfiles, "profiles", "", "YAML file overriding the built-in difficulty profiles")

	root.AddCommand(newGenerateCmd(), newBatchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadProfiles() (profile.Table, error) {
	if flagProfiles == "" {
		return profile.Default(), nil
	}
	return profile.Load(flagProfiles)
}

func newGenerateCmd() *cobra.Command {
	var (
		size       int
		difficulty string
		count      int
		seed       string
		attempts   int
		solutions  bool
		upload     bool
		idPrefix   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate puzzles of one size and difficulty",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := profile.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			profiles, err := loadProfiles()
			if err != nil {
				return err
			}
			gen := generator.New(profiles)

			var store *db.Store
			if upload {
				store, err = newStoreFromEnv()
				if err != nil {
					return err
				}
			}

			for i := 0; i < count; i++ {
				var p *generator.Puzzle
				if seed != "" {
					p, err = gen.GenerateSeeded(size, d, attempts, seedFromString(seed)+int64(i)*1_000_003)
				} else {
					p, err = gen.Generate(size, d, attempts)
				}
				if err != nil {
					return err
				}
				fmt.Printf("%dx%d %s — %d givens (seed %d)\n", p.Size, p.Size, p.Difficulty, p.Clues, p.Seed)
				fmt.Print(render.Puzzle(p))
				if solutions {
					fmt.Println("Solution:")
					fmt.Print(render.Solution(p))
				}
				if store != nil {
					id := fmt.Sprintf("%s%d%s%03d", idPrefix, size, strings.ToLower(string(d))[:1], i+1)
					if _, err := store.Upload(id, p); err != nil {
						return errors.Wrap(err, "uploading puzzle")
					}
					logrus.WithField("id", id).Info("uploaded puzzle")
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 9, "grid size (6, 9 or 16)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "Easy", "difficulty tier (Easy, Medium, Hard, Expert)")
	cmd.Flags().IntVar(&count, "count", 1, "number of puzzles to generate")
	cmd.Flags().StringVar(&seed, "seed", "", "free-text seed for reproducible output (empty = time-based)")
	cmd.Flags().IntVar(&attempts, "attempts", 5, "max fill+dig attempts per puzzle")
	cmd.Flags().BoolVar(&solutions, "solutions", false, "also print the answer keys")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload puzzles to PocketBase")
	cmd.Flags().StringVar(&idPrefix, "id-prefix", "p", "record ID prefix used with --upload")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		requests []string
		seed     string
		workers  int
		attempts int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate a book's worth of puzzles over a worker pool",
		Long: `Generate many puzzles in parallel. Each --request takes the form
size:difficulty:count, e.g. --request 9:Easy:40 --request 9:Hard:20.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := parseRequests(requests)
			if err != nil {
				return err
			}
			profiles, err := loadProfiles()
			if err != nil {
				return err
			}
			gen := generator.New(profiles)

			progress := make(chan batch.Progress)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for p := range progress {
					status := "ok"
					if p.Failed {
						status = "FAILED"
					}
					fmt.Printf("\r[%d/%d] %dx%d %s %s", p.Done, p.Total, p.Size, p.Size, p.Difficulty, status)
				}
				fmt.Println()
			}()

			var baseSeed int64
			if seed != "" {
				baseSeed = seedFromString(seed)
			}
			res := batch.Run(gen, reqs, batch.Options{
				Workers:     workers,
				Seed:        baseSeed,
				MaxAttempts: attempts,
				Progress:    progress,
			})
			close(progress)
			<-done

			ok := 0
			for _, p := range res.Puzzles {
				if p != nil {
					ok++
				}
			}
			fmt.Printf("generated %d/%d puzzles\n", ok, len(res.Puzzles))
			for _, w := range res.Warnings {
				logrus.WithFields(logrus.Fields{
					"puzzle":     w.Index + 1,
					"size":       w.Size,
					"difficulty": w.Difficulty,
					"target":     w.Target,
					"clues":      w.Clues,
				}).Warn("puzzle missed its exact clue target")
			}
			for _, err := range res.Failures {
				logrus.WithError(err).Error("batch task failed")
			}
			if res.Failed() {
				return fmt.Errorf("%d batch task(s) failed", len(res.Failures))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&requests, "request", nil, "size:difficulty:count (repeatable)")
	cmd.Flags().StringVar(&seed, "seed", "", "free-text base seed for a reproducible batch (empty = time-based)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = NumCPU)")
	cmd.Flags().IntVar(&attempts, "attempts", 5, "max fill+dig attempts per puzzle")
	return cmd
}

// seedFromString turns a free-text seed into an int64. Plain integers
// pass through unchanged so numeric seeds stay recognizable in the
// puzzle metadata; anything else is hashed.
func seedFromString(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

func parseRequests(specs []string) ([]batch.Request, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --request is required")
	}
	reqs := make([]batch.Request, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("bad request %q: want size:difficulty:count", s)
		}
		size, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("bad size in request %q", s)
		}
		d, err := profile.ParseDifficulty(parts[1])
		if err != nil {
			return nil, err
		}
		count, err := strconv.Atoi(parts[2])
		if err != nil || count < 1 {
			return nil, fmt.Errorf("bad count in request %q", s)
		}
		reqs = append(reqs, batch.Request{Size: size, Difficulty: d, Count: count})
	}
	return reqs, nil
}

func newStoreFromEnv() (*db.Store, error) {
	url := os.Getenv("POCKETBASE_URL")
	email := os.Getenv("POCKETBASE_EMAIL")
	password := os.Getenv("POCKETBASE_PASSWORD")
	if url == "" || email == "" || password == "" {
		return nil, fmt.Errorf("POCKETBASE_URL, POCKETBASE_EMAIL and POCKETBASE_PASSWORD must be set for --upload")
	}
	store := db.New(url, email, password)
	if err := store.Authenticate(); err != nil {
		return nil, err
	}
	return store, nil
}

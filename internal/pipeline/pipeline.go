// Package pipeline runs the feature extractors over a directory of game
// files with a bounded worker pool and collects the rows in game id order.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-nhl-features/internal/features"
	"github.com/pable/go-nhl-features/internal/metrics"
	"github.com/pable/go-nhl-features/internal/model"
	"github.com/pable/go-nhl-features/internal/parser"
)

// SkipFunc reports whether a loaded game is already up to date and can be
// left out of the run.
type SkipFunc func(model.GameSummary) (bool, error)

// Options configures a Runner.
type Options struct {
	Workers  int
	Features features.Options
	Skip     SkipFunc
}

// Result is the outcome for one file.
type Result struct {
	Path    string
	GameID  string
	Summary model.GameSummary
	Record  features.Record
	Skipped bool
	Err     error
}

// Report is the outcome of one run, ordered by game id.
type Report struct {
	RunID   string
	Results []Result
}

// Records returns the rows of every extracted game.
func (r *Report) Records() []features.Record {
	var out []features.Record
	for _, res := range r.Results {
		if res.Err == nil && !res.Skipped {
			out = append(out, res.Record)
		}
	}
	return out
}

// Failed returns the results that could not be loaded or merged.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Skipped returns how many games were skipped as unchanged.
func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}
	return n
}

// Runner processes game files.
type Runner struct {
	opts    Options
	log     zerolog.Logger
	metrics *metrics.Build
}

// New creates a Runner. A nil m records nothing.
func New(opts Options, log zerolog.Logger, m *metrics.Build) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if m == nil {
		m = metrics.NewBuild()
	}
	return &Runner{opts: opts, log: log, metrics: m}
}

// Run processes paths. A file that fails to load only fails its own result.
// Cancelling ctx stops scheduling new files and Run returns ctx.Err().
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	log := r.log.With().Str("run_id", report.RunID).Logger()
	log.Info().Int("files", len(paths)).Int("workers", r.opts.Workers).Msg("build starting")

	results := make([]Result, len(paths))
	scheduled := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		scheduled[i] = true
		g.Go(func() error {
			results[i] = r.processFile(log, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("build cancelled")
		return nil, err
	}

	for i, ok := range scheduled {
		if ok {
			report.Results = append(report.Results, results[i])
		}
	}
	sort.SliceStable(report.Results, func(i, j int) bool {
		a, b := report.Results[i], report.Results[j]
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		return a.Path < b.Path
	})

	log.Info().
		Int("games", len(report.Records())).
		Int("skipped", report.Skipped()).
		Int("failed", len(report.Failed())).
		Msg("build finished")
	return report, nil
}

func (r *Runner) processFile(log zerolog.Logger, path string) Result {
	res := Result{Path: path, GameID: parser.GameID(path)}

	start := time.Now()
	g, err := parser.ParseGame(path)
	r.metrics.ObserveStage("parse", time.Since(start))
	if err != nil {
		r.metrics.GameFailed()
		log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("skipping unreadable game")
		res.Err = err
		return res
	}
	res.Summary = g.Summary()
	res.Summary.Options = r.opts.Features.Fingerprint()

	if r.opts.Skip != nil {
		skip, err := r.opts.Skip(res.Summary)
		if err != nil {
			r.metrics.GameFailed()
			res.Err = fmt.Errorf("check stored game %s: %w", g.ID, err)
			return res
		}
		if skip {
			r.metrics.GameSkipped()
			log.Debug().Str("game_id", g.ID).Msg("unchanged, skipping")
			res.Skipped = true
			return res
		}
	}

	xs := features.Extractors(r.opts.Features)
	parts := make([]features.Features, 0, len(xs))
	for _, x := range xs {
		t := time.Now()
		parts = append(parts, x.Extract(g))
		r.metrics.ObserveStage(x.Name(), time.Since(t))
	}
	rec, err := features.Merge(g.ID, parts...)
	if err != nil {
		r.metrics.GameFailed()
		res.Err = err
		return res
	}

	r.metrics.GameProcessed(len(g.Plays))
	log.Debug().Str("game_id", g.ID).Int("events", len(g.Plays)).Msg("game extracted")
	res.Record = rec
	return res
}

// ListGameFiles returns the *.json files directly under dir, sorted by name.
func ListGameFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list input dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

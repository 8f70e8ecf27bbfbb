// Package audit scores and validates every item of a content bundle,
// optionally recording the results in the store.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/logging"
	"github.com/abhisek/ember/internal/mathcheck"
	"github.com/abhisek/ember/internal/records"
	"github.com/abhisek/ember/internal/store"
)

// DefaultWorkers is used when Runner.Workers is not positive.
const DefaultWorkers = 4

// ItemResult is the outcome for one bundle item.
type ItemResult struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`

	// Score is set for score items.
	Score *emberscore.ScoreResult `json:"score,omitempty"`

	// Checks and Summary are set for question items.
	Checks  []mathcheck.CheckResult `json:"checks,omitempty"`
	Summary *mathcheck.Summary      `json:"summary,omitempty"`

	// Error describes why the item could not be processed.
	Error string `json:"error,omitempty"`
}

// Stats aggregates a run.
type Stats struct {
	Items            int `json:"items"`
	Scored           int `json:"scored"`
	Questions        int `json:"questions"`
	ChecksFailed     int `json:"checksFailed"`
	CriticalFailures int `json:"criticalFailures"`
	InvalidItems     int `json:"invalidItems"`
}

// Run is the result of auditing one bundle.
type Run struct {
	ID            string       `json:"id"`
	BundleVersion string       `json:"bundleVersion"`
	StartedAt     time.Time    `json:"startedAt"`
	FinishedAt    time.Time    `json:"finishedAt"`
	Results       []ItemResult `json:"results"`
	Stats         Stats        `json:"stats"`
}

// Runner audits bundles. The zero value processes items with
// DefaultWorkers goroutines and records nothing.
type Runner struct {
	Workers int

	// Repositories; when all are nil nothing is persisted.
	Scores store.ScoreRepo
	Checks store.CheckRepo
	Runs   store.RunRepo

	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() string
}

// NewRunner returns a Runner that records into s. A nil s disables persistence.
func NewRunner(s *store.Store, workers int) *Runner {
	r := &Runner{Workers: workers}
	if s != nil {
		r.Scores = s.ScoreRepo()
		r.Checks = s.CheckRepo()
		r.Runs = s.RunRepo()
	}
	return r
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r *Runner) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.New().String()
}

// Run processes every item in b and returns the results in item order.
// It stops at the first persistence failure or when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, b *records.Bundle) (*Run, error) {
	if b == nil {
		return nil, fmt.Errorf("audit: nil bundle")
	}

	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	run := &Run{
		ID:            r.newID(),
		BundleVersion: b.Version,
		StartedAt:     r.now(),
		Results:       make([]ItemResult, len(b.Items)),
	}
	calc := emberscore.Calculator{Now: r.now}

	logger := logging.Component("audit").With().Str("run_id", run.ID).Logger()
	logger.Info().
		Int("items", len(b.Items)).
		Int("workers", workers).
		Msg("starting audit run")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range b.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.processItem(gctx, calc, run.ID, b.Items[i])
			if err != nil {
				return fmt.Errorf("item %q: %w", b.Items[i].ID, err)
			}
			run.Results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("audit run failed")
		return nil, err
	}

	run.FinishedAt = r.now()
	run.Stats = computeStats(run.Results)

	if r.Runs != nil {
		if err := r.Runs.Save(ctx, toStoreRun(run)); err != nil {
			return nil, fmt.Errorf("save audit run: %w", err)
		}
	}

	logger.Info().
		Int("scored", run.Stats.Scored).
		Int("questions", run.Stats.Questions).
		Int("checks_failed", run.Stats.ChecksFailed).
		Int("critical_failures", run.Stats.CriticalFailures).
		Dur("elapsed", run.FinishedAt.Sub(run.StartedAt)).
		Msg("audit run completed")

	return run, nil
}

func (r *Runner) processItem(ctx context.Context, calc emberscore.Calculator, runID string, item records.Item) (ItemResult, error) {
	res := ItemResult{ID: item.ID, Kind: item.Kind}

	switch {
	case item.Kind == records.KindScore && item.Score != nil:
		score := calc.Calculate(*item.Score)
		res.Score = &score
		if r.Scores != nil {
			_, err := r.Scores.Append(ctx, store.ScoreEventData{
				RunID:     runID,
				ContentID: item.ID,
				Result:    score,
			})
			if err != nil {
				return res, err
			}
		}

	case item.Kind == records.KindQuestion && item.Question != nil:
		checks := mathcheck.Validate(item.Question)
		summary := mathcheck.Summarize(checks)
		res.Checks = checks
		res.Summary = &summary
		if r.Checks != nil {
			questionID := item.Question.ID
			if questionID == "" {
				questionID = item.ID
			}
			if err := r.Checks.AppendAll(ctx, runID, questionID, checks); err != nil {
				return res, err
			}
		}

	case item.Kind == records.KindScore || item.Kind == records.KindQuestion:
		res.Error = fmt.Sprintf("missing %s payload", item.Kind)

	default:
		res.Error = fmt.Sprintf("unknown kind %q", item.Kind)
	}

	return res, nil
}

func computeStats(results []ItemResult) Stats {
	s := Stats{Items: len(results)}
	for _, res := range results {
		switch {
		case res.Error != "":
			s.InvalidItems++
		case res.Score != nil:
			s.Scored++
		case res.Summary != nil:
			s.Questions++
			s.ChecksFailed += res.Summary.Failed
			s.CriticalFailures += res.Summary.FailedBySeverity[mathcheck.SeverityCritical]
		}
	}
	return s
}

func toStoreRun(run *Run) store.AuditRun {
	return store.AuditRun{
		RunID:            run.ID,
		BundleVersion:    run.BundleVersion,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
		Items:            run.Stats.Items,
		Scored:           run.Stats.Scored,
		Questions:        run.Stats.Questions,
		ChecksFailed:     run.Stats.ChecksFailed,
		CriticalFailures: run.Stats.CriticalFailures,
		InvalidItems:     run.Stats.InvalidItems,
	}
}

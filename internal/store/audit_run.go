package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var runColumns = []string{
	"run_id", "bundle_version", "started_at", "finished_at", "items",
	"scored", "questions", "checks_failed", "critical_failures", "invalid_items",
}

type runRepo struct {
	drv *entsql.Driver
}

func (r *runRepo) Save(ctx context.Context, run AuditRun) error {
	if run.RunID == "" {
		return fmt.Errorf("save audit run: empty run id")
	}

	query, args := builder.Insert(tableAuditRuns).
		Columns(runColumns...).
		Values(
			run.RunID,
			run.BundleVersion,
			run.StartedAt.UnixNano(),
			run.FinishedAt.UnixNano(),
			run.Items,
			run.Scored,
			run.Questions,
			run.ChecksFailed,
			run.CriticalFailures,
			run.InvalidItems,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save audit run: %w", err)
	}
	return nil
}

func (r *runRepo) Get(ctx context.Context, runID string) (*AuditRun, error) {
	sel := builder.Select(runColumns...).
		From(builder.Table(tableAuditRuns)).
		Where(entsql.EQ("run_id", runID)).
		Limit(1)

	var found *AuditRun
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			run               AuditRun
			started, finished int64
		)
		if err := rows.Scan(
			&run.RunID, &run.BundleVersion, &started, &finished, &run.Items,
			&run.Scored, &run.Questions, &run.ChecksFailed, &run.CriticalFailures, &run.InvalidItems,
		); err != nil {
			return err
		}
		run.StartedAt = fromNanos(started)
		run.FinishedAt = fromNanos(finished)
		found = &run
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query audit run: %w", err)
	}
	return found, nil
}

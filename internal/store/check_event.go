package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/ember/internal/mathcheck"
)

var checkColumns = []string{
	"id", "sequence", "timestamp", "run_id", "question_id",
	"check_name", "passed", "severity", "details",
}

type checkRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *checkRepo) AppendAll(ctx context.Context, runID, questionID string, checks []mathcheck.CheckResult) error {
	if questionID == "" {
		return fmt.Errorf("append check events: empty question id")
	}
	if len(checks) == 0 {
		return nil
	}

	first, err := r.seq.Reserve(ctx, len(checks))
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	now := time.Now().UnixNano()
	ins := builder.Insert(tableCheckEvents).Columns(checkColumns[1:]...)
	for i, c := range checks {
		ins.Values(
			first+int64(i),
			now,
			runID,
			questionID,
			c.CheckName,
			c.Passed,
			string(c.Severity),
			c.Details,
		)
	}

	// One multi-row INSERT keeps a question's checks all-or-nothing.
	query, args := ins.Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save check events: %w", err)
	}
	return nil
}

func (r *checkRepo) ForQuestion(ctx context.Context, questionID string, opts QueryOpts) ([]CheckEvent, error) {
	sel := builder.Select(checkColumns...).
		From(builder.Table(tableCheckEvents)).
		Where(entsql.EQ("question_id", questionID)).
		OrderBy("sequence")
	applyQueryOpts(sel, opts)

	var events []CheckEvent
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			e        CheckEvent
			ts       int64
			severity string
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.RunID, &e.QuestionID,
			&e.Check.CheckName, &e.Check.Passed, &severity, &e.Check.Details,
		); err != nil {
			return err
		}
		e.Timestamp = fromNanos(ts)
		e.Check.Severity = mathcheck.Severity(severity)
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query check events: %w", err)
	}
	return events, nil
}

package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/ember/internal/emberscore"
)

var scoreColumns = []string{
	"id", "sequence", "timestamp", "run_id", "content_id", "score",
	"curriculum_alignment", "expert_verification", "community_feedback",
	"tier", "calculated_at",
}

type scoreRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *scoreRepo) Append(ctx context.Context, data ScoreEventData) (int64, error) {
	if data.ContentID == "" {
		return 0, fmt.Errorf("append score event: empty content id")
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	res := data.Result
	query, args := builder.Insert(tableScoreEvents).
		Columns(scoreColumns[1:]...).
		Values(
			seqNum,
			time.Now().UnixNano(),
			data.RunID,
			data.ContentID,
			res.Score,
			res.Breakdown.CurriculumAlignment,
			res.Breakdown.ExpertVerification,
			res.Breakdown.CommunityFeedback,
			string(res.Tier),
			res.CalculatedAt.UnixNano(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return 0, fmt.Errorf("save score event: %w", err)
	}
	return seqNum, nil
}

func (r *scoreRepo) Latest(ctx context.Context, contentID string) (*ScoreEvent, error) {
	events, err := r.History(ctx, contentID, QueryOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *scoreRepo) History(ctx context.Context, contentID string, opts QueryOpts) ([]ScoreEvent, error) {
	sel := builder.Select(scoreColumns...).
		From(builder.Table(tableScoreEvents)).
		Where(entsql.EQ("content_id", contentID)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	var events []ScoreEvent
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			e          ScoreEvent
			ts, calcAt int64
			tier       string
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.RunID, &e.ContentID, &e.Result.Score,
			&e.Result.Breakdown.CurriculumAlignment,
			&e.Result.Breakdown.ExpertVerification,
			&e.Result.Breakdown.CommunityFeedback,
			&tier, &calcAt,
		); err != nil {
			return err
		}
		e.Timestamp = fromNanos(ts)
		e.Result.CalculatedAt = fromNanos(calcAt)
		e.Result.Tier = emberscore.Tier(tier)
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query score events: %w", err)
	}
	return events, nil
}

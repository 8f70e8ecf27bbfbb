package store

import (
	"context"
	"time"

	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/mathcheck"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ScoreEventData captures one computed trust score for a piece of content.
type ScoreEventData struct {
	RunID     string
	ContentID string
	Result    emberscore.ScoreResult
}

// ScoreEvent is a persisted ScoreEventData.
type ScoreEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	ScoreEventData
}

// CheckEventData captures one validation check outcome for a question.
type CheckEventData struct {
	RunID      string
	QuestionID string
	Check      mathcheck.CheckResult
}

// CheckEvent is a persisted CheckEventData.
type CheckEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	CheckEventData
}

// AuditRun summarizes one bundle audit.
type AuditRun struct {
	RunID            string
	BundleVersion    string
	StartedAt        time.Time
	FinishedAt       time.Time
	Items            int
	Scored           int
	Questions        int
	ChecksFailed     int
	CriticalFailures int
	InvalidItems     int
}

// ScoreRepo records trust scores over time.
type ScoreRepo interface {
	// Append records a score event and returns its sequence number.
	Append(ctx context.Context, data ScoreEventData) (int64, error)

	// Latest returns the most recent score for contentID, or nil if none exist.
	Latest(ctx context.Context, contentID string) (*ScoreEvent, error)

	// History returns score events for contentID, newest first.
	History(ctx context.Context, contentID string, opts QueryOpts) ([]ScoreEvent, error)
}

// CheckRepo records validation check outcomes.
type CheckRepo interface {
	// AppendAll records every check for one question atomically.
	AppendAll(ctx context.Context, runID, questionID string, checks []mathcheck.CheckResult) error

	// ForQuestion returns check events for questionID in recorded order.
	ForQuestion(ctx context.Context, questionID string, opts QueryOpts) ([]CheckEvent, error)
}

// RunRepo stores audit run summaries.
type RunRepo interface {
	Save(ctx context.Context, run AuditRun) error

	// Get returns the run with the given ID, or nil if it does not exist.
	Get(ctx context.Context, runID string) (*AuditRun, error)
}

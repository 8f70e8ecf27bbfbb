package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableScoreEvents = "score_events"
	tableCheckEvents = "check_events"
	tableAuditRuns   = "audit_runs"
)

// Timestamps are stored as Unix nanoseconds so they round-trip exactly
// regardless of how the driver formats time values.
var (
	scoreEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "run_id", Type: field.TypeString, Default: ""},
		{Name: "content_id", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "curriculum_alignment", Type: field.TypeInt},
		{Name: "expert_verification", Type: field.TypeInt},
		{Name: "community_feedback", Type: field.TypeInt},
		{Name: "tier", Type: field.TypeString},
		{Name: "calculated_at", Type: field.TypeInt64},
	}
	scoreEventsTable = &schema.Table{
		Name:       tableScoreEvents,
		Columns:    scoreEventsColumns,
		PrimaryKey: []*schema.Column{scoreEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "scoreevent_content_id_sequence",
				Columns: []*schema.Column{scoreEventsColumns[4], scoreEventsColumns[1]},
			},
		},
	}

	checkEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "run_id", Type: field.TypeString, Default: ""},
		{Name: "question_id", Type: field.TypeString},
		{Name: "check_name", Type: field.TypeString},
		{Name: "passed", Type: field.TypeBool},
		{Name: "severity", Type: field.TypeString},
		{Name: "details", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	checkEventsTable = &schema.Table{
		Name:       tableCheckEvents,
		Columns:    checkEventsColumns,
		PrimaryKey: []*schema.Column{checkEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "checkevent_question_id_sequence",
				Columns: []*schema.Column{checkEventsColumns[4], checkEventsColumns[1]},
			},
		},
	}

	auditRunsColumns = []*schema.Column{
		{Name: "run_id", Type: field.TypeString},
		{Name: "bundle_version", Type: field.TypeString},
		{Name: "started_at", Type: field.TypeInt64},
		{Name: "finished_at", Type: field.TypeInt64},
		{Name: "items", Type: field.TypeInt},
		{Name: "scored", Type: field.TypeInt},
		{Name: "questions", Type: field.TypeInt},
		{Name: "checks_failed", Type: field.TypeInt},
		{Name: "critical_failures", Type: field.TypeInt},
		{Name: "invalid_items", Type: field.TypeInt},
	}
	auditRunsTable = &schema.Table{
		Name:       tableAuditRuns,
		Columns:    auditRunsColumns,
		PrimaryKey: []*schema.Column{auditRunsColumns[0]},
	}

	tables = []*schema.Table{scoreEventsTable, checkEventsTable, auditRunsTable}
)

// migrate creates missing tables and indexes with ent's schema migrator.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ember/internal/audit"
	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/mathcheck"
	"github.com/abhisek/ember/internal/store"
)

var plain = Options{}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestScore_Text(t *testing.T) {
	res := emberscore.ScoreResult{
		Score:        83,
		Breakdown:    emberscore.Breakdown{CurriculumAlignment: 40, ExpertVerification: 25, CommunityFeedback: 18},
		Tier:         emberscore.TierConfident,
		CalculatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, Score(&buf, res, plain))
	out := buf.String()

	assert.Contains(t, out, "Score: 83 / 100  [Confident]")
	assert.Contains(t, out, "Expert verification")
	assert.Contains(t, out, "25/40  ██████░░░░  63%")
	assert.Contains(t, out, "Calculated at 2026-03-01T12:00:00Z")
	assert.NotContains(t, out, "\x1b[", "plain output must not contain escape codes")
}

func TestScore_JSON(t *testing.T) {
	res := emberscore.ScoreResult{Score: 30, Tier: emberscore.TierDraft}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(30), decoded["score"])
	assert.Equal(t, "draft", decoded["tier"])
}

func TestChecks_Text(t *testing.T) {
	checks := []mathcheck.CheckResult{
		{CheckName: mathcheck.CheckComputationVerification, Passed: true, Severity: mathcheck.SeverityCritical, Details: "4 matches 4"},
		{CheckName: mathcheck.CheckDisplayAnswerVerification, Passed: false, Severity: mathcheck.SeverityCritical, Details: "5 != 4"},
	}

	var buf bytes.Buffer
	require.NoError(t, Checks(&buf, checks, plain))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "PASS  computation_verification "))
	assert.True(t, strings.HasPrefix(lines[1], "FAIL  display_answer_verification  critical"))
	assert.Equal(t, "2 checks: 1 passed, 1 failed (worst: critical)", lines[2])
}

func TestAuditRun_Text(t *testing.T) {
	okSummary := mathcheck.Summary{Total: 3, Passed: 3, FailedBySeverity: map[mathcheck.Severity]int{}}
	badSummary := mathcheck.Summary{Total: 2, Passed: 1, Failed: 1, Worst: mathcheck.SeverityCritical,
		FailedBySeverity: map[mathcheck.Severity]int{mathcheck.SeverityCritical: 1}}

	run := &audit.Run{
		ID:            "run-1",
		BundleVersion: "v1.0.0",
		Results: []audit.ItemResult{
			{ID: "lesson-1", Kind: "score", Score: &emberscore.ScoreResult{Score: 100, Tier: emberscore.TierVerified}},
			{ID: "q-good", Kind: "question", Summary: &okSummary},
			{ID: "q-bad", Kind: "question", Summary: &badSummary},
			{ID: "broken", Kind: "score", Error: "missing score payload"},
		},
		Stats: audit.Stats{Items: 4, Scored: 1, Questions: 2, ChecksFailed: 1, CriticalFailures: 1, InvalidItems: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, AuditRun(&buf, run, plain))
	out := buf.String()

	assert.Contains(t, out, "Audit run run-1 (bundle v1.0.0)")
	assert.Contains(t, out, "lesson-1  score     100  Verified")
	assert.Contains(t, out, "q-good    question  ok   3/3 passed")
	assert.Contains(t, out, "q-bad     question  FAIL 1/2 passed (critical)")
	assert.Contains(t, out, "broken    invalid   missing score payload")
	assert.Contains(t, out, "4 items: 1 scored, 2 questions, 1 checks failed (1 critical), 1 invalid")
}

func TestHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, History(&buf, "lesson-1", nil, plain))
	assert.Equal(t, "No scores recorded for lesson-1\n", buf.String())

	buf.Reset()
	events := []store.ScoreEvent{{
		Sequence:  7,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ScoreEventData: store.ScoreEventData{
			ContentID: "lesson-1",
			Result: emberscore.ScoreResult{
				Score:     80,
				Tier:      emberscore.TierConfident,
				Breakdown: emberscore.Breakdown{CurriculumAlignment: 40, ExpertVerification: 25, CommunityFeedback: 15},
			},
		},
	}}
	require.NoError(t, History(&buf, "lesson-1", events, plain))
	assert.Contains(t, buf.String(), "#7     2026-03-01T12:00:00Z   80  Confident")
	assert.Contains(t, buf.String(), "(40 + 25 + 15)")
}

func TestTiers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tiers(&buf, plain))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Verified    >=  90"))
	assert.True(t, strings.HasPrefix(lines[1], "Confident   >=  75"))
	assert.True(t, strings.HasPrefix(lines[2], "Draft       >=   0"))
}

func TestColorOutputStyles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tiers(&buf, Options{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

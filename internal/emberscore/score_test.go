package emberscore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pending(n int) []ErrorReport {
	reports := make([]ErrorReport, n)
	for i := range reports {
		reports[i] = ErrorReport{Status: ErrorReportPending}
	}
	return reports
}

func TestCalculate_CommunityCappedAtMax(t *testing.T) {
	got := Calculate(ScoreInput{
		ReviewStatus:   ReviewStatusAIOnly,
		CommunityStats: CommunityStats{HelpfulCount: 10, PracticeCount: 500},
	})

	// 16 + min(4, 5) + min(4, 0.5) = 20.5, clamped to 20.
	assert.Equal(t, Breakdown{CurriculumAlignment: 0, ExpertVerification: 10, CommunityFeedback: 20}, got.Breakdown)
	assert.Equal(t, 30, got.Score)
	assert.Equal(t, TierDraft, got.Tier)
}

func TestCalculate_PendingReportSuppressesUsageBonus(t *testing.T) {
	got := Calculate(ScoreInput{
		ReviewStatus:   ReviewStatusAIOnly,
		CommunityStats: CommunityStats{HelpfulCount: 10, PracticeCount: 500},
		ErrorReports:   pending(1),
	})

	// 16 + 4 - 2 = 18, no usage bonus.
	assert.Equal(t, 18, got.Breakdown.CommunityFeedback)
	assert.Equal(t, 28, got.Score)
}

func TestCommunityFeedback_UsageBonus(t *testing.T) {
	stats := CommunityStats{PracticeCount: 40000} // 0.1 * 400 = 40, capped at 4

	tests := []struct {
		name    string
		reports []ErrorReport
		want    int
	}{
		{"no reports", nil, 20},
		{"resolved and dismissed reports do not suppress", []ErrorReport{
			{Status: ErrorReportResolved}, {Status: ErrorReportDismissed},
		}, 20},
		{"one pending report suppresses entirely", pending(1), 14},
		{"two pending reports", pending(2), 12},
	}

	for _, tc := range tests {
		if got := CommunityFeedback(stats, tc.reports); got != tc.want {
			t.Errorf("%s: CommunityFeedback = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCommunityFeedback_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		stats   CommunityStats
		reports []ErrorReport
		want    int
	}{
		{"baseline", CommunityStats{}, nil, 16},
		{"many pending reports floor at zero", CommunityStats{}, pending(10), 0},
		{"helpful offsets penalty before clamp", CommunityStats{HelpfulCount: 100}, pending(9), 2},
		{"helpful capped", CommunityStats{HelpfulCount: 1000}, nil, 20},
		{"half point rounds up", CommunityStats{HelpfulCount: 3}, nil, 18},
		{"small usage bonus", CommunityStats{PracticeCount: 100}, nil, 16},
		{"negative counts ignored", CommunityStats{HelpfulCount: -5, PracticeCount: -5}, nil, 16},
	}

	for _, tc := range tests {
		if got := CommunityFeedback(tc.stats, tc.reports); got != tc.want {
			t.Errorf("%s: CommunityFeedback = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCurriculumAlignment(t *testing.T) {
	tests := []struct {
		ref  string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"KS2", 40},
		{"ks2 fractions", 40},
		{"KS 3 Algebra", 40},
		{"Y5", 40},
		{"y5-number", 40},
		{"Year 6", 40},
		{"year10 geometry", 40},
		{"Fractions KS2", 20},
		{"Common Core 4.NF.1", 20},
		{"KS2Fractions", 40},
		{"Y5a", 40},
		{"ks3-algebra", 40},
		{"KS9", 20},
		{"Key Stage 2", 20},
		{"Yesterday", 20},
	}

	for _, tc := range tests {
		if got := CurriculumAlignment(tc.ref); got != tc.want {
			t.Errorf("CurriculumAlignment(%q) = %d, want %d", tc.ref, got, tc.want)
		}
	}
}

func TestExpertVerification(t *testing.T) {
	tests := []struct {
		status ReviewStatus
		want   int
	}{
		{ReviewStatusReviewed, 40},
		{ReviewStatusSpotChecked, 25},
		{ReviewStatusAIOnly, 10},
		{"", 10},
		{"peer_reviewed", 10},
	}

	for _, tc := range tests {
		if got := ExpertVerification(tc.status); got != tc.want {
			t.Errorf("ExpertVerification(%q) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestCalculate_PerfectScore(t *testing.T) {
	got := Calculate(ScoreInput{
		CurriculumReference: "KS2 Fractions",
		ReviewStatus:        ReviewStatusReviewed,
		CommunityStats:      CommunityStats{HelpfulCount: 8, PracticeCount: 10000},
	})
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, TierVerified, got.Tier)
}

func TestCalculate_Deterministic(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calc := Calculator{Now: func() time.Time { return fixed }}
	input := ScoreInput{
		CurriculumReference: "Year 4",
		ReviewStatus:        ReviewStatusSpotChecked,
		CommunityStats:      CommunityStats{HelpfulCount: 2, PracticeCount: 300},
		ErrorReports:        []ErrorReport{{Status: ErrorReportResolved}},
	}

	first := calc.Calculate(input)
	second := calc.Calculate(input)
	assert.Equal(t, first, second)
	assert.Equal(t, fixed, first.CalculatedAt)
}

func TestCalculate_Invariants(t *testing.T) {
	refs := []string{"", "KS1", "something"}
	statuses := []ReviewStatus{ReviewStatusReviewed, ReviewStatusSpotChecked, ReviewStatusAIOnly, "", "bogus"}
	counts := []int{0, 1, 7, 50, 100000}

	for _, ref := range refs {
		for _, st := range statuses {
			for _, helpful := range counts {
				for _, practice := range counts {
					for _, p := range []int{0, 1, 3, 20} {
						r := Calculate(ScoreInput{
							CurriculumReference: ref,
							ReviewStatus:        st,
							CommunityStats:      CommunityStats{HelpfulCount: helpful, PracticeCount: practice},
							ErrorReports:        pending(p),
						})
						b := r.Breakdown
						if b.CurriculumAlignment < 0 || b.CurriculumAlignment > MaxCurriculumAlignment ||
							b.ExpertVerification < 0 || b.ExpertVerification > MaxExpertVerification ||
							b.CommunityFeedback < 0 || b.CommunityFeedback > MaxCommunityFeedback {
							t.Fatalf("component out of range: %+v", b)
						}
						if r.Score != clamp(b.Sum(), 0, MaxScore) {
							t.Fatalf("score %d != clamp(sum %d)", r.Score, b.Sum())
						}
						if r.Tier != TierForScore(r.Score) {
							t.Fatalf("tier %s inconsistent with score %d", r.Tier, r.Score)
						}
					}
				}
			}
		}
	}
}

func TestScoreInput_JSONNulls(t *testing.T) {
	raw := `{
		"curriculumReference": null,
		"reviewStatus": null,
		"communityStats": {"helpfulCount": 10, "practiceCount": 500},
		"errorReports": [{"status": "pending"}, {"status": "resolved"}]
	}`

	var in ScoreInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	assert.Empty(t, in.CurriculumReference)
	assert.Empty(t, in.ReviewStatus)
	assert.Equal(t, 1, PendingReports(in.ErrorReports))

	got := Calculate(in)
	assert.Equal(t, 28, got.Score)

	out, err := json.Marshal(got.Breakdown)
	require.NoError(t, err)
	assert.JSONEq(t, `{"curriculumAlignment":0,"expertVerification":10,"communityFeedback":18}`, string(out))
}

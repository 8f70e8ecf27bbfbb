// Package emberscore computes the Ember Score, a deterministic 0-100
// content quality score built from curriculum alignment, expert review
// status and community feedback, and maps it to a quality tier.
package emberscore

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// Component maxima.
const (
	MaxCurriculumAlignment = 40
	MaxExpertVerification  = 40
	MaxCommunityFeedback   = 20
	MaxScore               = 100
)

// Curriculum alignment credit.
const (
	curriculumRecognized = 40
	curriculumPartial    = 20
)

// Expert verification credit.
const (
	expertReviewed    = 40
	expertSpotChecked = 25
	expertBaseline    = 10
)

// Community feedback parameters.
const (
	communityBaseline    = 16.0
	pendingReportPenalty = 2.0
	helpfulWeight        = 0.5
	helpfulCap           = 4.0
	practiceWeight       = 0.1
	practicePer          = 100.0
	practiceCap          = 4.0
)

// curriculumPattern recognises key-stage and year-group prefixes such as
// "KS2", "ks 3", "Y5", "Year 6", "year10".
var curriculumPattern = regexp.MustCompile(`(?i)^(ks\s?[1-5]|y(ear)?\s?(1[0-3]|[1-9]))`)

// Calculator computes Ember Scores. The zero value uses time.Now.
type Calculator struct {
	// Now returns the timestamp recorded in CalculatedAt.
	Now func() time.Time
}

// Calculate computes the score with a zero-value Calculator.
func Calculate(input ScoreInput) ScoreResult {
	return Calculator{}.Calculate(input)
}

// Calculate computes the Ember Score for input. It never fails: absent and
// unrecognised values fall back to their minimum-credit defaults.
func (c Calculator) Calculate(input ScoreInput) ScoreResult {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	b := Breakdown{
		CurriculumAlignment: CurriculumAlignment(input.CurriculumReference),
		ExpertVerification:  ExpertVerification(input.ReviewStatus),
		CommunityFeedback:   CommunityFeedback(input.CommunityStats, input.ErrorReports),
	}
	score := clamp(b.Sum(), 0, MaxScore)

	return ScoreResult{
		Score:        score,
		Breakdown:    b,
		Tier:         TierForScore(score),
		CalculatedAt: now().UTC(),
	}
}

// CurriculumAlignment scores a curriculum reference: 0 when empty, 40 when
// it starts with a recognised key-stage or year-group prefix, 20 otherwise.
func CurriculumAlignment(ref string) int {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return 0
	case curriculumPattern.MatchString(ref):
		return curriculumRecognized
	default:
		return curriculumPartial
	}
}

// ExpertVerification scores a review status. Unknown statuses receive the
// ai_only baseline.
func ExpertVerification(status ReviewStatus) int {
	switch status {
	case ReviewStatusReviewed:
		return expertReviewed
	case ReviewStatusSpotChecked:
		return expertSpotChecked
	default:
		return expertBaseline
	}
}

// CommunityFeedback scores community signals. Starting from 16, each
// pending report subtracts 2 and helpful votes add up to 4. Practice usage
// adds up to 4 more, but only while no report is pending. The result is
// clamped to [0, 20] and rounded to the nearest integer.
func CommunityFeedback(stats CommunityStats, reports []ErrorReport) int {
	pending := PendingReports(reports)

	raw := communityBaseline
	raw -= pendingReportPenalty * float64(pending)
	raw += math.Min(helpfulCap, helpfulWeight*float64(max(stats.HelpfulCount, 0)))
	if pending == 0 && stats.PracticeCount > 0 {
		raw += math.Min(practiceCap, practiceWeight*float64(stats.PracticeCount)/practicePer)
	}

	raw = math.Max(0, math.Min(MaxCommunityFeedback, raw))
	return int(math.Round(raw))
}

// PendingReports counts reports still awaiting resolution.
func PendingReports(reports []ErrorReport) int {
	n := 0
	for _, r := range reports {
		if r.Status == ErrorReportPending {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

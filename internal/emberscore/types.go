package emberscore

import "time"

// ScoreInput is the content-item metadata and interaction statistics the
// Ember Score is computed from. JSON nulls decode to the zero value, which
// every component treats as "absent".
type ScoreInput struct {
	// CurriculumReference is a free-text curriculum tag, e.g. "KS2 Fractions".
	CurriculumReference string `json:"curriculumReference"`

	ReviewStatus   ReviewStatus   `json:"reviewStatus"`
	CommunityStats CommunityStats `json:"communityStats"`
	ErrorReports   []ErrorReport  `json:"errorReports"`
}

// CommunityStats are aggregate learner interactions with the content item.
type CommunityStats struct {
	HelpfulCount  int `json:"helpfulCount"`
	PracticeCount int `json:"practiceCount"`
}

// ErrorReport is a quality complaint filed against the content item.
type ErrorReport struct {
	Status ErrorReportStatus `json:"status"`
}

// ReviewStatus records the degree of human quality assurance performed.
type ReviewStatus string

const (
	ReviewStatusReviewed    ReviewStatus = "reviewed"
	ReviewStatusSpotChecked ReviewStatus = "spot_checked"
	ReviewStatusAIOnly      ReviewStatus = "ai_only"
)

// ErrorReportStatus is the lifecycle state of an error report.
type ErrorReportStatus string

const (
	ErrorReportPending   ErrorReportStatus = "pending"
	ErrorReportResolved  ErrorReportStatus = "resolved"
	ErrorReportDismissed ErrorReportStatus = "dismissed"
)

// Breakdown holds the three independently bounded score components.
type Breakdown struct {
	CurriculumAlignment int `json:"curriculumAlignment"` // 0..40
	ExpertVerification  int `json:"expertVerification"`  // 0..40
	CommunityFeedback   int `json:"communityFeedback"`   // 0..20
}

// Sum returns the unclamped component total.
func (b Breakdown) Sum() int {
	return b.CurriculumAlignment + b.ExpertVerification + b.CommunityFeedback
}

// ScoreResult is a computed Ember Score. Score always equals
// clamp(Breakdown.Sum(), 0, 100) and Tier is derived from Score.
type ScoreResult struct {
	Score        int       `json:"score"`
	Breakdown    Breakdown `json:"breakdown"`
	Tier         Tier      `json:"tier"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

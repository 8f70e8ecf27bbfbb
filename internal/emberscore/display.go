package emberscore

import "math"

// BreakdownLine describes one score component for display.
type BreakdownLine struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Value      int    `json:"value"`
	Max        int    `json:"max"`
	Percentage int    `json:"percentage"` // Value as a rounded percentage of Max
}

// FormatScoreBreakdown returns the components of b in display order.
func FormatScoreBreakdown(b Breakdown) []BreakdownLine {
	return []BreakdownLine{
		breakdownLine("curriculumAlignment", "Curriculum alignment", b.CurriculumAlignment, MaxCurriculumAlignment),
		breakdownLine("expertVerification", "Expert verification", b.ExpertVerification, MaxExpertVerification),
		breakdownLine("communityFeedback", "Community feedback", b.CommunityFeedback, MaxCommunityFeedback),
	}
}

func breakdownLine(key, label string, value, maxValue int) BreakdownLine {
	return BreakdownLine{
		Key:        key,
		Label:      label,
		Value:      value,
		Max:        maxValue,
		Percentage: int(math.Round(float64(value) / float64(maxValue) * 100)),
	}
}

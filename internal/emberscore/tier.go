package emberscore

// Tier is a discrete quality bucket derived from the score.
type Tier string

const (
	TierVerified  Tier = "verified"
	TierConfident Tier = "confident"
	TierDraft     Tier = "draft"
)

// Tier thresholds (inclusive lower bounds).
const (
	VerifiedMinScore  = 90
	ConfidentMinScore = 75
)

// AllTiers returns all tiers from highest to lowest.
func AllTiers() []Tier {
	return []Tier{TierVerified, TierConfident, TierDraft}
}

// TierForScore maps a score to its tier: >= 90 verified, 75-89 confident,
// below 75 draft.
func TierForScore(score int) Tier {
	switch {
	case score >= VerifiedMinScore:
		return TierVerified
	case score >= ConfidentMinScore:
		return TierConfident
	default:
		return TierDraft
	}
}

// TierInfo is presentation metadata for a tier.
type TierInfo struct {
	Tier        Tier   `json:"tier"`
	Label       string `json:"label"`
	Description string `json:"description"`
	MinScore    int    `json:"minScore"`
}

var tierInfo = map[Tier]TierInfo{
	TierVerified: {
		Tier:        TierVerified,
		Label:       "Verified",
		Description: "Curriculum-aligned, expert reviewed and well received by the community.",
		MinScore:    VerifiedMinScore,
	},
	TierConfident: {
		Tier:        TierConfident,
		Label:       "Confident",
		Description: "Good quality signals; some checks are still partial.",
		MinScore:    ConfidentMinScore,
	},
	TierDraft: {
		Tier:        TierDraft,
		Label:       "Draft",
		Description: "Limited quality signals so far; review before relying on it.",
		MinScore:    0,
	},
}

// GetTierInfo returns presentation metadata for t. Unknown tiers get the
// draft entry.
func GetTierInfo(t Tier) TierInfo {
	if info, ok := tierInfo[t]; ok {
		return info
	}
	return tierInfo[TierDraft]
}

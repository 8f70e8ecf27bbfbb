package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/mathcheck"
)

// Color palette
var (
	Primary = lipgloss.Color("#F97316") // Ember Orange
	Glow    = lipgloss.Color("#FACC15") // Amber
	Success = lipgloss.Color("#22C55E") // Green
	Warning = lipgloss.Color("#EAB308") // Yellow
	Error   = lipgloss.Color("#F43F5E") // Rose
	Danger  = lipgloss.Color("#DC2626") // Red
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Pass = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	BarFilled = lipgloss.NewStyle().
			Foreground(Primary)

	BarEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

var tierStyles = map[emberscore.Tier]lipgloss.Style{
	emberscore.TierVerified:  lipgloss.NewStyle().Foreground(Success).Bold(true),
	emberscore.TierConfident: lipgloss.NewStyle().Foreground(Glow).Bold(true),
	emberscore.TierDraft:     lipgloss.NewStyle().Foreground(TextDim).Bold(true),
}

// ForTier returns the badge style for t.
func ForTier(t emberscore.Tier) lipgloss.Style {
	if s, ok := tierStyles[t]; ok {
		return s
	}
	return tierStyles[emberscore.TierDraft]
}

var severityStyles = map[mathcheck.Severity]lipgloss.Style{
	mathcheck.SeverityWarning:  lipgloss.NewStyle().Foreground(Warning),
	mathcheck.SeverityError:    lipgloss.NewStyle().Foreground(Error),
	mathcheck.SeverityCritical: lipgloss.NewStyle().Foreground(Danger).Bold(true),
}

// ForSeverity returns the style for a failed check of severity s.
func ForSeverity(s mathcheck.Severity) lipgloss.Style {
	if st, ok := severityStyles[s]; ok {
		return st
	}
	return Label
}

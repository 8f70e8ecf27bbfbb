// Package report renders scores, check results and audit runs for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ember/internal/audit"
	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/mathcheck"
	"github.com/abhisek/ember/internal/store"
	"github.com/abhisek/ember/internal/ui/theme"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an --output flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text or json)", s)
}

// Options controls text rendering.
type Options struct {
	// Color enables terminal styling.
	Color bool
}

func (o Options) style(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

const barWidth = 10

func (o Options) bar(percentage int) string {
	filled := (percentage*barWidth + 50) / 100
	filled = max(0, min(barWidth, filled))
	return o.style(theme.BarFilled, strings.Repeat("█", filled)) +
		o.style(theme.BarEmpty, strings.Repeat("░", barWidth-filled))
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Score writes a score result with its component breakdown.
func Score(w io.Writer, res emberscore.ScoreResult, opts Options) error {
	info := emberscore.GetTierInfo(res.Tier)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d / %d  %s\n",
		opts.style(theme.Title, "Score:"), res.Score, emberscore.MaxScore,
		opts.style(theme.ForTier(res.Tier), "["+info.Label+"]"))

	for _, line := range emberscore.FormatScoreBreakdown(res.Breakdown) {
		fmt.Fprintf(&b, "  %-22s %2d/%-2d  %s %3d%%\n",
			line.Label, line.Value, line.Max, opts.bar(line.Percentage), line.Percentage)
	}

	if !res.CalculatedAt.IsZero() {
		b.WriteString(opts.style(theme.Hint, "Calculated at "+res.CalculatedAt.Format(time.RFC3339)) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Checks writes one line per check followed by a summary line.
func Checks(w io.Writer, checks []mathcheck.CheckResult, opts Options) error {
	var b strings.Builder
	width := 0
	for _, c := range checks {
		width = max(width, len(c.CheckName))
	}

	for _, c := range checks {
		status := opts.style(theme.Pass, "PASS")
		severity := fmt.Sprintf("%-8s", c.Severity)
		if !c.Passed {
			status = opts.style(theme.Fail, "FAIL")
			severity = opts.style(theme.ForSeverity(c.Severity), severity)
		}
		fmt.Fprintf(&b, "%s  %-*s  %s  %s\n", status, width, c.CheckName, severity, c.Details)
	}

	b.WriteString(summaryLine(mathcheck.Summarize(checks), opts) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryLine(s mathcheck.Summary, opts Options) string {
	line := fmt.Sprintf("%d checks: %d passed, %d failed", s.Total, s.Passed, s.Failed)
	if s.Worst != "" {
		line += fmt.Sprintf(" (worst: %s)", opts.style(theme.ForSeverity(s.Worst), string(s.Worst)))
	}
	return line
}

// AuditRun writes one line per bundle item followed by run totals.
func AuditRun(w io.Writer, run *audit.Run, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (bundle %s)\n", opts.style(theme.Title, "Audit run"), run.ID, run.BundleVersion)

	width := 0
	for _, res := range run.Results {
		width = max(width, len(res.ID))
	}

	for _, res := range run.Results {
		fmt.Fprintf(&b, "  %-*s  ", width, res.ID)
		switch {
		case res.Error != "":
			fmt.Fprintf(&b, "%-8s  %s\n", "invalid", opts.style(theme.Fail, res.Error))
		case res.Score != nil:
			info := emberscore.GetTierInfo(res.Score.Tier)
			fmt.Fprintf(&b, "%-8s  %3d  %s\n", "score", res.Score.Score,
				opts.style(theme.ForTier(res.Score.Tier), info.Label))
		case res.Summary != nil:
			status := opts.style(theme.Pass, "ok  ")
			if !res.Summary.OK() {
				status = opts.style(theme.Fail, "FAIL")
			}
			fmt.Fprintf(&b, "%-8s  %s %d/%d passed", "question", status, res.Summary.Passed, res.Summary.Total)
			if res.Summary.Worst != "" {
				fmt.Fprintf(&b, " (%s)", opts.style(theme.ForSeverity(res.Summary.Worst), string(res.Summary.Worst)))
			}
			b.WriteString("\n")
		}
	}

	st := run.Stats
	fmt.Fprintf(&b, "%d items: %d scored, %d questions, %d checks failed (%d critical), %d invalid\n",
		st.Items, st.Scored, st.Questions, st.ChecksFailed, st.CriticalFailures, st.InvalidItems)

	_, err := io.WriteString(w, b.String())
	return err
}

// History writes stored score events, newest first.
func History(w io.Writer, contentID string, events []store.ScoreEvent, opts Options) error {
	if len(events) == 0 {
		_, err := fmt.Fprintf(w, "No scores recorded for %s\n", contentID)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", opts.style(theme.Title, "Score history for"), contentID)
	for _, e := range events {
		info := emberscore.GetTierInfo(e.Result.Tier)
		bd := e.Result.Breakdown
		fmt.Fprintf(&b, "  #%-5d %s  %3d  %-10s  (%d + %d + %d)\n",
			e.Sequence, e.Timestamp.Format(time.RFC3339), e.Result.Score,
			opts.style(theme.ForTier(e.Result.Tier), fmt.Sprintf("%-10s", info.Label)),
			bd.CurriculumAlignment, bd.ExpertVerification, bd.CommunityFeedback)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Tiers writes the tier table, highest first.
func Tiers(w io.Writer, opts Options) error {
	var b strings.Builder
	for _, t := range emberscore.AllTiers() {
		info := emberscore.GetTierInfo(t)
		fmt.Fprintf(&b, "%s  >= %3d  %s\n",
			opts.style(theme.ForTier(t), fmt.Sprintf("%-10s", info.Label)), info.MinScore, info.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

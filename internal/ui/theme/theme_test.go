package theme

import (
	"testing"

	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/mathcheck"
)

func TestForTier_UnknownFallsBackToDraft(t *testing.T) {
	want := ForTier(emberscore.TierDraft).Render("x")
	if got := ForTier("gold").Render("x"); got != want {
		t.Errorf("ForTier(gold) rendered %q, want %q", got, want)
	}
}

func TestForSeverity_DistinctStyles(t *testing.T) {
	seen := map[string]mathcheck.Severity{}
	for _, s := range []mathcheck.Severity{mathcheck.SeverityWarning, mathcheck.SeverityError, mathcheck.SeverityCritical} {
		out := ForSeverity(s).Render("x")
		if prev, ok := seen[out]; ok {
			t.Errorf("%s renders the same as %s", s, prev)
		}
		seen[out] = s
	}
}

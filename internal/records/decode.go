// Package records decodes the JSON records consumed by the score engine and
// the math validator, validating them against JSON Schemas first.
package records

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/ember/internal/emberscore"
	"github.com/abhisek/ember/internal/mathcheck"
)

// SupportedMajor is the bundle major version this build reads.
const SupportedMajor = "v1"

// Item kinds in a content bundle.
const (
	KindScore    = "score"
	KindQuestion = "question"
)

// Bundle is a versioned batch of content items.
type Bundle struct {
	Version string `json:"version"`
	Items   []Item `json:"items"`
}

// Item is one bundle entry. Exactly one of Score or Question is set,
// according to Kind.
type Item struct {
	ID       string                  `json:"id"`
	Kind     string                  `json:"kind"`
	Score    *emberscore.ScoreInput  `json:"score,omitempty"`
	Question *mathcheck.MathQuestion `json:"question,omitempty"`
}

// DecodeScoreInput validates and decodes a ScoreInput.
func DecodeScoreInput(raw []byte) (emberscore.ScoreInput, error) {
	var in emberscore.ScoreInput
	if err := validate(ScoreInputSchema, raw); err != nil {
		return in, err
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, &ErrInvalidRecord{Kind: ScoreInputSchema.Name, Err: err}
	}
	return in, nil
}

// DecodeMathQuestion validates and decodes a MathQuestion.
func DecodeMathQuestion(raw []byte) (*mathcheck.MathQuestion, error) {
	if err := validate(MathQuestionSchema, raw); err != nil {
		return nil, err
	}
	var q mathcheck.MathQuestion
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, &ErrInvalidRecord{Kind: MathQuestionSchema.Name, Err: err}
	}
	return &q, nil
}

// rawBundle defers item payload decoding until the kind is known.
type rawBundle struct {
	Version string `json:"version"`
	Items   []struct {
		ID       string          `json:"id"`
		Kind     string          `json:"kind"`
		Score    json.RawMessage `json:"score"`
		Question json.RawMessage `json:"question"`
	} `json:"items"`
}

// DecodeBundle validates the bundle envelope and its version, then decodes
// each item payload against its own schema.
func DecodeBundle(raw []byte) (*Bundle, error) {
	if err := validate(BundleSchema, raw); err != nil {
		return nil, err
	}
	var rb rawBundle
	if err := json.Unmarshal(raw, &rb); err != nil {
		return nil, &ErrInvalidRecord{Kind: BundleSchema.Name, Err: err}
	}
	if err := CheckVersion(rb.Version); err != nil {
		return nil, err
	}

	b := &Bundle{Version: rb.Version, Items: make([]Item, 0, len(rb.Items))}
	seen := make(map[string]bool, len(rb.Items))
	for i, ri := range rb.Items {
		if seen[ri.ID] {
			return nil, &ErrInvalidRecord{Kind: BundleSchema.Name, Err: fmt.Errorf("item %d: duplicate id %q", i, ri.ID)}
		}
		seen[ri.ID] = true

		item := Item{ID: ri.ID, Kind: ri.Kind}
		switch ri.Kind {
		case KindScore:
			if len(ri.Score) == 0 {
				return nil, &ErrInvalidRecord{Kind: BundleSchema.Name, Err: fmt.Errorf("item %q: missing score payload", ri.ID)}
			}
			in, err := DecodeScoreInput(ri.Score)
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", ri.ID, err)
			}
			item.Score = &in
		case KindQuestion:
			if len(ri.Question) == 0 {
				return nil, &ErrInvalidRecord{Kind: BundleSchema.Name, Err: fmt.Errorf("item %q: missing question payload", ri.ID)}
			}
			q, err := DecodeMathQuestion(ri.Question)
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", ri.ID, err)
			}
			if q.ID == "" {
				q.ID = ri.ID
			}
			item.Question = q
		}
		b.Items = append(b.Items, item)
	}
	return b, nil
}

// CheckVersion accepts semantic versions whose major is SupportedMajor.
// A missing "v" prefix is tolerated.
func CheckVersion(v string) error {
	canonical := v
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) || semver.Major(canonical) != SupportedMajor {
		return &ErrUnsupportedVersion{Version: v, Supported: SupportedMajor}
	}
	return nil
}

package mathcheck

import (
	"strings"
	"testing"
)

func mixedQuestion(answer, working string, format AnswerFormat) *MathQuestion {
	return &MathQuestion{
		AnswerFormat:   format,
		ComputedAnswer: answer,
		Working:        Working{ComputedResult: working},
	}
}

func TestValidateFractions_NonFractionalFormats(t *testing.T) {
	for _, f := range []AnswerFormat{FormatInteger, FormatDecimal, FormatPercentage, "", "ratio"} {
		if checks := ValidateFractions(mixedQuestion("1 5/35", "40/35", f)); len(checks) != 0 {
			t.Errorf("format %q: expected no checks, got %+v", f, checks)
		}
	}
	if checks := ValidateFractions(nil); len(checks) != 0 {
		t.Errorf("nil question: expected no checks, got %+v", checks)
	}
}

func TestValidateFractions_MixedNumberConversion(t *testing.T) {
	checks := ValidateFractions(mixedQuestion("1 5/35", "40/35", FormatMixedNumber))

	conv := findCheck(t, checks, CheckMixedNumberConversion)
	if !conv.Passed {
		t.Fatalf("1 5/35 from 40/35 should convert: %+v", conv)
	}

	// The fractional part 5/35 is not simplified.
	simp := findCheck(t, checks, CheckFractionSimplified)
	if simp.Passed || simp.Severity != SeverityError {
		t.Errorf("5/35 should fail simplification with error severity: %+v", simp)
	}
	if !strings.Contains(simp.Details, "1/7") {
		t.Errorf("details should state the reduced form, got %q", simp.Details)
	}
}

func TestValidateFractions_MixedNumberConversionFailures(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		working string
	}{
		{"numerator mismatch", "1 5/35", "41/35"},
		{"denominator mismatch", "2 2/8", "9/4"},
		{"working not a fraction", "1 3/4", "1.75"},
		{"working missing", "1 3/4", ""},
	}

	for _, tc := range tests {
		checks := ValidateFractions(mixedQuestion(tc.answer, tc.working, FormatMixedNumber))
		conv := findCheck(t, checks, CheckMixedNumberConversion)
		if conv.Passed || conv.Severity != SeverityCritical {
			t.Errorf("%s: expected critical conversion failure, got %+v", tc.name, conv)
		}
	}
}

func TestValidateFractions_MixedNumberFormat(t *testing.T) {
	for _, answer := range []string{"1.75", "7/4", "one and three quarters", ""} {
		checks := ValidateFractions(mixedQuestion(answer, "7/4", FormatMixedNumber))
		if len(checks) != 1 {
			t.Fatalf("%q: expected only the format check, got %+v", answer, checks)
		}
		c := checks[0]
		if c.CheckName != CheckMixedNumberFormat || c.Passed || c.Severity != SeverityError {
			t.Errorf("%q: unexpected check %+v", answer, c)
		}
	}
}

func TestValidateFractions_Simplified(t *testing.T) {
	checks := ValidateFractions(mixedQuestion("1 3/4", "7/4", FormatMixedNumber))
	simp := findCheck(t, checks, CheckFractionSimplified)
	if !simp.Passed || simp.Severity != SeverityWarning {
		t.Errorf("3/4 should pass simplification with warning severity: %+v", simp)
	}
}

// The unsimplified check is informational: it passes whether or not the
// fractional part actually shares a common factor.
func TestValidateFractions_UnsimplifiedAlwaysPasses(t *testing.T) {
	tests := []struct {
		answer  string
		working string
		wantGCD string
	}{
		{"1 6/8", "14/8", "GCD 2"},
		{"1 3/4", "7/4", "GCD 1"},
	}

	for _, tc := range tests {
		checks := ValidateFractions(mixedQuestion(tc.answer, tc.working, FormatMixedNumberUnsimplified))
		if !findCheck(t, checks, CheckMixedNumberConversion).Passed {
			t.Errorf("%s: conversion should pass", tc.answer)
		}
		c := findCheck(t, checks, CheckFractionUnsimplified)
		if !c.Passed {
			t.Errorf("%s: unsimplified check must always pass: %+v", tc.answer, c)
		}
		if !strings.Contains(c.Details, tc.wantGCD) {
			t.Errorf("%s: details %q should mention %q", tc.answer, c.Details, tc.wantGCD)
		}
	}
}

func TestValidateFractions_Fraction(t *testing.T) {
	tests := []struct {
		answer   string
		passed   bool
		severity Severity
	}{
		{"3/4", true, SeverityWarning},
		{"-3/4", true, SeverityWarning},
		{"6/8", false, SeverityError},
		{"7/2", true, SeverityWarning},
	}

	for _, tc := range tests {
		q := &MathQuestion{AnswerFormat: FormatFraction, ComputedAnswer: tc.answer}
		checks := ValidateFractions(q)
		if len(checks) != 1 {
			t.Fatalf("%q: expected one check, got %+v", tc.answer, checks)
		}
		c := checks[0]
		if c.CheckName != CheckFractionSimplified || c.Passed != tc.passed || c.Severity != tc.severity {
			t.Errorf("%q: got %+v, want passed=%v severity=%s", tc.answer, c, tc.passed, tc.severity)
		}
	}
}

func TestValidateFractions_FractionWholeNumber(t *testing.T) {
	q := &MathQuestion{AnswerFormat: FormatFraction, ComputedAnswer: "2"}
	if checks := ValidateFractions(q); len(checks) != 0 {
		t.Errorf("whole number needs no simplification check, got %+v", checks)
	}
}

func TestValidateFractions_FractionFormat(t *testing.T) {
	q := &MathQuestion{AnswerFormat: FormatFraction, ComputedAnswer: "0.75"}
	checks := ValidateFractions(q)
	if len(checks) != 1 || checks[0].CheckName != CheckFractionFormat || checks[0].Passed {
		t.Errorf("expected fraction_format failure, got %+v", checks)
	}
}

func TestValidateFractions_Idempotent(t *testing.T) {
	q := mixedQuestion("1 5/35", "40/35", FormatMixedNumber)
	first := ValidateFractions(q)
	second := ValidateFractions(q)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("check %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

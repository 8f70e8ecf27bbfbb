package mathcheck

import (
	"fmt"
	"strconv"
	"strings"
)

// FractionValidator checks mixed-number conversion and the simplification
// state of fractional answers.
type FractionValidator struct{}

func (v *FractionValidator) Name() string { return "fractions" }

func (v *FractionValidator) Check(q *MathQuestion) []CheckResult {
	return ValidateFractions(q)
}

// ValidateFractions runs the fraction checks on q. Questions whose answer
// format is not fraction, mixed_number or mixed_number_unsimplified yield
// no checks.
func ValidateFractions(q *MathQuestion) []CheckResult {
	if q == nil || !q.AnswerFormat.IsFractional() {
		return nil
	}
	if q.AnswerFormat.IsMixed() {
		return validateMixedNumber(q)
	}
	return validateFraction(q)
}

func validateMixedNumber(q *MathQuestion) []CheckResult {
	mixed, err := ParseMixedNumber(q.ComputedAnswer)
	if err != nil {
		return []CheckResult{{
			CheckName: CheckMixedNumberFormat,
			Passed:    false,
			Details:   fmt.Sprintf("displayed answer %q is not a mixed number of the form \"W N/D\"", q.ComputedAnswer),
			Severity:  SeverityError,
		}}
	}
	return []CheckResult{
		checkConversion(mixed, q.Working.ComputedResult),
		checkSimplification(mixed.Num, mixed.Den, q.AnswerFormat),
	}
}

func validateFraction(q *MathQuestion) []CheckResult {
	num, den, err := ParseFraction(q.ComputedAnswer)
	if err != nil {
		// A whole number has no fractional part to simplify.
		if _, ierr := strconv.ParseInt(strings.TrimSpace(q.ComputedAnswer), 10, 64); ierr == nil {
			return nil
		}
		return []CheckResult{{
			CheckName: CheckFractionFormat,
			Passed:    false,
			Details:   fmt.Sprintf("displayed answer %q is not a fraction of the form \"N/D\"", q.ComputedAnswer),
			Severity:  SeverityError,
		}}
	}
	return []CheckResult{checkSimplification(num, den, q.AnswerFormat)}
}

// checkConversion verifies that the displayed mixed number was converted
// from the recorded improper fraction: W×D + N == N' and D == D'.
func checkConversion(mixed MixedNumber, improper string) CheckResult {
	res := CheckResult{CheckName: CheckMixedNumberConversion, Severity: SeverityCritical}
	wantNum, wantDen, err := ParseFraction(improper)
	if err != nil {
		res.Details = fmt.Sprintf("working result %q is not an improper fraction of the form \"N/D\"", improper)
		return res
	}
	gotNum, err := mixed.ImproperNumerator()
	if err != nil {
		res.Details = fmt.Sprintf("mixed number %s cannot be converted: %v", mixed, err)
		return res
	}
	res.Passed = gotNum == wantNum && mixed.Den == wantDen
	if res.Passed {
		res.Details = fmt.Sprintf("%s converts to %d/%d, matching working result %s", mixed, gotNum, mixed.Den, improper)
	} else {
		res.Details = fmt.Sprintf("%s converts to %d/%d but working result is %s", mixed, gotNum, mixed.Den, improper)
	}
	return res
}

// checkSimplification reports the GCD of num/den. For
// mixed_number_unsimplified the check is informational and always passes.
func checkSimplification(num, den int64, format AnswerFormat) CheckResult {
	g := GCD(abs(num), abs(den))
	frac := fmt.Sprintf("%d/%d", num, den)

	if format == FormatMixedNumberUnsimplified {
		res := CheckResult{CheckName: CheckFractionUnsimplified, Passed: true, Severity: SeverityWarning}
		if g > 1 {
			res.Details = fmt.Sprintf("fractional part %s has GCD %d (unsimplified as intended)", frac, g)
		} else {
			res.Details = fmt.Sprintf("fractional part %s has GCD 1 (already in lowest terms)", frac)
		}
		return res
	}

	if g == 1 {
		return CheckResult{
			CheckName: CheckFractionSimplified,
			Passed:    true,
			Details:   fmt.Sprintf("%s is in lowest terms", frac),
			Severity:  SeverityWarning,
		}
	}
	return CheckResult{
		CheckName: CheckFractionSimplified,
		Passed:    false,
		Details:   fmt.Sprintf("%s is not in lowest terms (GCD %d); simplifies to %d/%d", frac, g, num/g, den/g),
		Severity:  SeverityError,
	}
}

package mathcheck

import (
	"fmt"
	"strings"
)

// ArithmeticValidator re-evaluates the authored verification expression and
// compares the result with both the expected result and the displayed
// answer.
type ArithmeticValidator struct{}

func (v *ArithmeticValidator) Name() string { return "arithmetic" }

func (v *ArithmeticValidator) Check(q *MathQuestion) []CheckResult {
	return ValidateArithmetic(q)
}

// ValidateArithmetic runs the arithmetic checks on q. Expected failure modes
// (missing expression, unparsable input, mismatches) are reported as
// CheckResults; nothing is returned as an error.
func ValidateArithmetic(q *MathQuestion) []CheckResult {
	if q == nil || q.ComputationalVerification == nil || strings.TrimSpace(q.ComputationalVerification.Expression) == "" {
		return []CheckResult{{
			CheckName: CheckHasVerificationExpression,
			Passed:    false,
			Details:   "no computational verification expression provided",
			Severity:  SeverityError,
		}}
	}
	cv := q.ComputationalVerification

	computed, err := Evaluate(cv.Expression, cv.ResultFormat)
	if err != nil {
		return []CheckResult{{
			CheckName: CheckComputationExecution,
			Passed:    false,
			Details:   fmt.Sprintf("failed to evaluate verification expression: %v", err),
			Severity:  SeverityCritical,
		}}
	}

	return []CheckResult{
		compareExpected(computed, cv),
		compareDisplayed(computed, q),
	}
}

// Evaluate parses and evaluates expr. A "fraction" result format selects
// exact rational arithmetic; any other format uses float64.
func Evaluate(expr, resultFormat string) (Value, error) {
	e, err := ParseExpr(expr)
	if err != nil {
		return Value{}, err
	}
	if AnswerFormat(resultFormat) == FormatFraction {
		r, err := e.Rational()
		if err != nil {
			return Value{}, err
		}
		return ExactValue(r), nil
	}
	f, err := e.Float()
	if err != nil {
		return Value{}, err
	}
	return FloatValue(f), nil
}

func compareExpected(computed Value, cv *ComputationalVerification) CheckResult {
	res := CheckResult{CheckName: CheckComputationVerification, Severity: SeverityCritical}
	expected, err := ParseExpected(cv.ExpectedResult, cv.ResultFormat)
	if err != nil {
		res.Details = fmt.Sprintf("expression %q evaluated to %s but expected result %q could not be parsed: %v",
			cv.Expression, computed, cv.ExpectedResult, err)
		return res
	}
	res.Passed = computed.Equal(expected)
	if res.Passed {
		res.Details = fmt.Sprintf("expression %q evaluated to %s, matching expected result %q",
			cv.Expression, computed, cv.ExpectedResult)
	} else {
		res.Details = fmt.Sprintf("expression %q evaluated to %s but expected result is %q (%s)",
			cv.Expression, computed, cv.ExpectedResult, expected)
	}
	return res
}

func compareDisplayed(computed Value, q *MathQuestion) CheckResult {
	res := CheckResult{CheckName: CheckDisplayAnswerVerification, Severity: SeverityCritical}
	displayed, err := ParseDisplayed(q.ComputedAnswer, q.AnswerFormat)
	if err != nil {
		res.Details = fmt.Sprintf("displayed answer %q could not be parsed as %s: %v",
			q.ComputedAnswer, formatName(q.AnswerFormat), err)
		return res
	}
	res.Passed = computed.Equal(displayed)
	if !res.Passed && isPercentSign(q) {
		// "45%" also matches an expression that yields percentage points.
		res.Passed = computed.Equal(FloatValue(displayed.F * 100))
	}
	if res.Passed {
		res.Details = fmt.Sprintf("displayed answer %q matches computed value %s", q.ComputedAnswer, computed)
	} else {
		res.Details = fmt.Sprintf("displayed answer %q (%s) does not match computed value %s",
			q.ComputedAnswer, displayed, computed)
	}
	return res
}

func isPercentSign(q *MathQuestion) bool {
	return q.AnswerFormat == FormatPercentage && strings.HasSuffix(strings.TrimSpace(q.ComputedAnswer), "%")
}

func formatName(f AnswerFormat) string {
	if f == "" {
		return "decimal"
	}
	return string(f)
}

package mathcheck

// MathQuestion is an authored math question submitted for validation.
type MathQuestion struct {
	// ID identifies the question in its content bank. Optional; only used
	// by callers that persist results.
	ID string `json:"id,omitempty"`

	// AnswerFormat selects how ComputedAnswer is encoded.
	AnswerFormat AnswerFormat `json:"answerFormat"`

	// ComputedAnswer is the answer displayed to the learner,
	// e.g. "12.5", "45%", "3/4", "1 3/4".
	ComputedAnswer string `json:"computedAnswer"`

	// ComputationalVerification is the authoring-time self-check.
	// Nil when the author did not supply one.
	ComputationalVerification *ComputationalVerification `json:"computationalVerification,omitempty"`

	Working Working `json:"working"`
}

// ComputationalVerification pairs an arithmetic expression with the result
// the author expected it to produce.
type ComputationalVerification struct {
	Expression     string `json:"expression"`
	ExpectedResult string `json:"expectedResult"`
	ResultFormat   string `json:"resultFormat"`
}

// Working holds intermediate results recorded while the answer was derived.
type Working struct {
	// ComputedResult is the improper fraction ("40/35") or raw number the
	// displayed mixed number was converted from.
	ComputedResult string `json:"computedResult,omitempty"`
}

// AnswerFormat describes the textual encoding of a displayed answer.
type AnswerFormat string

const (
	FormatInteger                 AnswerFormat = "integer"                   // "12"
	FormatDecimal                 AnswerFormat = "decimal"                   // "12.5"
	FormatPercentage              AnswerFormat = "percentage"                // "45%"
	FormatFraction                AnswerFormat = "fraction"                  // "3/4"
	FormatMixedNumber             AnswerFormat = "mixed_number"              // "1 3/4"
	FormatMixedNumberUnsimplified AnswerFormat = "mixed_number_unsimplified" // "1 6/8"
)

// IsFractional reports whether the format carries a fractional part that
// the fraction validator inspects.
func (f AnswerFormat) IsFractional() bool {
	switch f {
	case FormatFraction, FormatMixedNumber, FormatMixedNumberUnsimplified:
		return true
	}
	return false
}

// IsMixed reports whether the format is one of the mixed-number formats.
func (f AnswerFormat) IsMixed() bool {
	return f == FormatMixedNumber || f == FormatMixedNumberUnsimplified
}

// Severity ranks how urgently a failed check needs human review.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Rank orders severities: warning < error < critical. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	}
	return 0
}

// Check names emitted by the validators.
const (
	CheckHasVerificationExpression = "has_verification_expression"
	CheckComputationVerification   = "computation_verification"
	CheckDisplayAnswerVerification = "display_answer_verification"
	CheckComputationExecution      = "computation_execution"
	CheckMixedNumberConversion     = "mixed_number_conversion"
	CheckMixedNumberFormat         = "mixed_number_format"
	CheckFractionFormat            = "fraction_format"
	CheckFractionSimplified        = "fraction_simplified"
	CheckFractionUnsimplified      = "fraction_unsimplified"
)

// CheckResult is a single validator finding.
type CheckResult struct {
	CheckName string   `json:"checkName"`
	Passed    bool     `json:"passed"`
	Details   string   `json:"details"`
	Severity  Severity `json:"severity"`
}

// Package mathcheck verifies authored math questions: it re-derives the
// answer from the authoring-time verification expression, compares it with
// the expected and displayed answers, and checks fraction-specific
// formatting such as mixed-number conversion and simplification.
//
// All functions are pure and safe for concurrent use.
package mathcheck

// Validator produces findings for one question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "arithmetic", "fractions".
	Name() string

	// Check returns the findings for q. Expected failure modes are reported
	// as CheckResults, never panics or errors.
	Check(q *MathQuestion) []CheckResult
}

// DefaultValidators returns the validators run by Validate, in order.
func DefaultValidators() []Validator {
	return []Validator{&ArithmeticValidator{}, &FractionValidator{}}
}

// Validate runs every default validator on q and concatenates the results.
func Validate(q *MathQuestion) []CheckResult {
	checks := []CheckResult{}
	for _, v := range DefaultValidators() {
		checks = append(checks, v.Check(q)...)
	}
	return checks
}

// Summary aggregates a list of checks.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`

	// FailedBySeverity counts failed checks per severity.
	FailedBySeverity map[Severity]int `json:"failedBySeverity"`

	// Worst is the highest severity among failed checks, empty if none failed.
	Worst Severity `json:"worst,omitempty"`
}

// OK reports whether no check of severity error or critical failed.
func (s Summary) OK() bool {
	return s.Worst.Rank() < SeverityError.Rank()
}

// Summarize counts passed and failed checks.
func Summarize(checks []CheckResult) Summary {
	s := Summary{FailedBySeverity: map[Severity]int{}}
	for _, c := range checks {
		s.Total++
		if c.Passed {
			s.Passed++
			continue
		}
		s.Failed++
		s.FailedBySeverity[c.Severity]++
		if c.Severity.Rank() > s.Worst.Rank() {
			s.Worst = c.Severity
		}
	}
	return s
}

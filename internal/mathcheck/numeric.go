package mathcheck

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Tolerance is the absolute tolerance for comparing inexact values.
const Tolerance = 1e-4

var (
	decimalPattern     = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
	fractionPattern    = regexp.MustCompile(`^(-?\d+)\s*/\s*(-?\d+)$`)
	mixedNumberPattern = regexp.MustCompile(`^(-?)(\d+)\s+(\d+)\s*/\s*(\d+)$`)
	constructorPattern = regexp.MustCompile(`^Fraction\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)$`)
)

// Value is a parsed or computed number. Exact values carry a Rational and
// compare exactly against other exact values; anything else compares with
// Tolerance.
type Value struct {
	Exact bool
	Rat   Rational
	F     float64
}

// ExactValue wraps a rational.
func ExactValue(r Rational) Value {
	return Value{Exact: true, Rat: r, F: r.Float64()}
}

// FloatValue wraps a float.
func FloatValue(f float64) Value {
	return Value{F: f}
}

// Equal compares two values exactly when both are exact, otherwise within
// Tolerance.
func (v Value) Equal(o Value) bool {
	if v.Exact && o.Exact {
		return v.Rat.Equal(o.Rat)
	}
	return math.Abs(v.F-o.F) <= Tolerance
}

func (v Value) String() string {
	if v.Exact {
		return v.Rat.String()
	}
	return strconv.FormatFloat(math.Round(v.F*1e9)/1e9, 'f', -1, 64)
}

type valueParser func(s string) (Value, error)

// displayParsers maps each answer format to the encodings tried, in order,
// on a displayed answer. Formats not listed fall back to decimal.
var displayParsers = map[AnswerFormat][]valueParser{
	FormatInteger:                 {parseDecimal},
	FormatDecimal:                 {parseDecimal},
	FormatPercentage:              {parsePercentage},
	FormatFraction:                {parseFraction, parseDecimal},
	FormatMixedNumber:             {parseMixedNumber, parseFraction, parseDecimal},
	FormatMixedNumberUnsimplified: {parseMixedNumber, parseFraction, parseDecimal},
}

// ParseDisplayed parses a displayed answer according to its format.
func ParseDisplayed(s string, format AnswerFormat) (Value, error) {
	parsers, ok := displayParsers[format]
	if !ok {
		parsers = []valueParser{parseDecimal}
	}
	return firstParse(s, parsers)
}

// ParseExpected parses an authored expected result. Fraction(n, d) and
// "n/d" are tried before a decimal parse; "%" is honoured when resultFormat
// is "percentage".
func ParseExpected(s, resultFormat string) (Value, error) {
	parsers := []valueParser{parseConstructor, parseFraction}
	if AnswerFormat(resultFormat) == FormatPercentage {
		parsers = append(parsers, parsePercentage)
	}
	parsers = append(parsers, parseDecimal)
	return firstParse(s, parsers)
}

func firstParse(s string, parsers []valueParser) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("empty value")
	}
	var lastErr error
	for _, p := range parsers {
		v, err := p(s)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return Value{}, lastErr
}

func parseDecimal(s string) (Value, error) {
	if !decimalPattern.MatchString(s) {
		return Value{}, fmt.Errorf("%q is not a decimal number", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return FloatValue(f), nil
}

// parsePercentage reads "45%" as 0.45. Without a trailing "%" the value is
// read as a plain decimal.
func parsePercentage(s string) (Value, error) {
	body, ok := strings.CutSuffix(s, "%")
	if !ok {
		return parseDecimal(s)
	}
	v, err := parseDecimal(strings.TrimSpace(body))
	if err != nil {
		return Value{}, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return FloatValue(v.F / 100), nil
}

func parseFraction(s string) (Value, error) {
	num, den, err := ParseFraction(s)
	if err != nil {
		return Value{}, err
	}
	r, err := NewRational(num, den)
	if err != nil {
		return Value{}, fmt.Errorf("invalid fraction %q: %w", s, err)
	}
	return ExactValue(r), nil
}

func parseMixedNumber(s string) (Value, error) {
	m, err := ParseMixedNumber(s)
	if err != nil {
		return Value{}, err
	}
	r, err := m.Improper()
	if err != nil {
		return Value{}, fmt.Errorf("invalid mixed number %q: %w", s, err)
	}
	return ExactValue(r), nil
}

func parseConstructor(s string) (Value, error) {
	match := constructorPattern.FindStringSubmatch(s)
	if match == nil {
		return Value{}, fmt.Errorf("%q is not a Fraction literal", s)
	}
	num, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid denominator: %w", err)
	}
	r, err := NewRational(num, den)
	if err != nil {
		return Value{}, fmt.Errorf("invalid Fraction literal %q: %w", s, err)
	}
	return ExactValue(r), nil
}

// ParseFraction parses "a/b" into numerator and denominator without
// reducing. The denominator must be non-zero.
func ParseFraction(s string) (int64, int64, error) {
	match := fractionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	if den == 0 {
		return 0, 0, fmt.Errorf("zero denominator in %q", s)
	}
	return num, den, nil
}

// MixedNumber is a parsed "W N/D" string, kept unreduced.
type MixedNumber struct {
	Negative bool
	Whole    int64
	Num      int64
	Den      int64
}

// ParseMixedNumber parses "W N/D" (optionally "-W N/D").
func ParseMixedNumber(s string) (MixedNumber, error) {
	match := mixedNumberPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return MixedNumber{}, fmt.Errorf("invalid mixed number format: %q", s)
	}
	whole, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return MixedNumber{}, fmt.Errorf("invalid whole part: %w", err)
	}
	num, err := strconv.ParseInt(match[3], 10, 64)
	if err != nil {
		return MixedNumber{}, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(match[4], 10, 64)
	if err != nil {
		return MixedNumber{}, fmt.Errorf("invalid denominator: %w", err)
	}
	if den == 0 {
		return MixedNumber{}, fmt.Errorf("zero denominator in %q", s)
	}
	return MixedNumber{Negative: match[1] == "-", Whole: whole, Num: num, Den: den}, nil
}

// ImproperNumerator returns W×D + N, negated for negative mixed numbers.
func (m MixedNumber) ImproperNumerator() (int64, error) {
	wd, err := mulChecked(m.Whole, m.Den)
	if err != nil {
		return 0, err
	}
	n, err := addChecked(wd, m.Num)
	if err != nil {
		return 0, err
	}
	if m.Negative {
		n = -n
	}
	return n, nil
}

// Improper returns the mixed number as a reduced rational.
func (m MixedNumber) Improper() (Rational, error) {
	n, err := m.ImproperNumerator()
	if err != nil {
		return Rational{}, err
	}
	return NewRational(n, m.Den)
}

func (m MixedNumber) String() string {
	sign := ""
	if m.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d %d/%d", sign, m.Whole, m.Num, m.Den)
}

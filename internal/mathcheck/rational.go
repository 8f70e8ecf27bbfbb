package mathcheck

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// ErrOverflow is returned when a rational operation does not fit in int64.
var ErrOverflow = errors.New("integer overflow in rational arithmetic")

// ErrDivisionByZero is returned for division by a zero value.
var ErrDivisionByZero = errors.New("division by zero")

// Rational is an exact fraction. Values built with NewRational are always
// in lowest terms with a positive denominator. The zero value is not a valid
// Rational; use NewRational or Int.
type Rational struct {
	Num int64
	Den int64
}

// NewRational returns num/den reduced to lowest terms with the sign carried
// on the numerator.
func NewRational(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, ErrDivisionByZero
	}
	if num == math.MinInt64 || den == math.MinInt64 {
		return Rational{}, ErrOverflow
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := GCD(abs(num), den)
	return Rational{Num: num / g, Den: den / g}, nil
}

// Int returns n/1.
func Int(n int64) Rational {
	return Rational{Num: n, Den: 1}
}

func (r Rational) Add(o Rational) (Rational, error) {
	a, err := mulChecked(r.Num, o.Den)
	if err != nil {
		return Rational{}, err
	}
	b, err := mulChecked(o.Num, r.Den)
	if err != nil {
		return Rational{}, err
	}
	n, err := addChecked(a, b)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulChecked(r.Den, o.Den)
	if err != nil {
		return Rational{}, err
	}
	return NewRational(n, d)
}

func (r Rational) Neg() Rational {
	return Rational{Num: -r.Num, Den: r.Den}
}

func (r Rational) Sub(o Rational) (Rational, error) {
	return r.Add(o.Neg())
}

func (r Rational) Mul(o Rational) (Rational, error) {
	n, err := mulChecked(r.Num, o.Num)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulChecked(r.Den, o.Den)
	if err != nil {
		return Rational{}, err
	}
	return NewRational(n, d)
}

func (r Rational) Div(o Rational) (Rational, error) {
	if o.Num == 0 {
		return Rational{}, ErrDivisionByZero
	}
	n, err := mulChecked(r.Num, o.Den)
	if err != nil {
		return Rational{}, err
	}
	d, err := mulChecked(r.Den, o.Num)
	if err != nil {
		return Rational{}, err
	}
	return NewRational(n, d)
}

// Equal reports exact equality. Both operands must be normalised.
func (r Rational) Equal(o Rational) bool {
	return r.Num == o.Num && r.Den == o.Den
}

// IsInteger reports whether the denominator is 1.
func (r Rational) IsInteger() bool {
	return r.Den == 1
}

func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// String formats as "n/d", or "n" when the denominator is 1.
func (r Rational) String() string {
	if r.IsInteger() {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// ParseDecimalRational converts a decimal literal such as "12.5" or "-0.25"
// into an exact rational (25/2, -1/4).
func ParseDecimalRational(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rational{}, fmt.Errorf("empty number")
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return Rational{}, fmt.Errorf("invalid number %q", s)
	}
	digits := intPart + fracPart
	for _, c := range digits {
		if c < '0' || c > '9' {
			return Rational{}, fmt.Errorf("invalid number %q", s)
		}
	}
	num, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Rational{}, ErrOverflow
	}
	den := int64(1)
	for range fracPart {
		den, err = mulChecked(den, 10)
		if err != nil {
			return Rational{}, err
		}
	}
	if neg {
		num = -num
	}
	return NewRational(num, den)
}

// GCD returns the greatest common divisor of a and b using Euclid's
// algorithm. Both a and b must be non-negative. GCD(a, 0) == a.
func GCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// abs returns the absolute value of n.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func mulChecked(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(uint64(abs(a)), uint64(abs(b)))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, ErrOverflow
	}
	if neg {
		return -int64(lo), nil
	}
	return int64(lo), nil
}

func addChecked(a, b int64) (int64, error) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, ErrOverflow
	}
	return s, nil
}

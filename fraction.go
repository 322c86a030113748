package asset

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrInvalidNumberFormat is returned when a string does not match the
	// decimal grammar.
	ErrInvalidNumberFormat = errors.New("invalid number format")
	// ErrInvalidOperand is returned when an exact integer is required but
	// the input is fractional, malformed or outside ±[MaxSafeInteger].
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrDivisionByZero is returned when a divisor or a denominator is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrPrecisionExceeded is returned when an amount is asked to render more
	// fractional digits than it stores.
	ErrPrecisionExceeded = errors.New("precision exceeded")
	// ErrInexactConversion is returned when a conversion to a bounded decimal
	// type would lose digits.
	ErrInexactConversion = errors.New("inexact conversion")
	// ErrAbsentNumber is returned when an absent [Number] is converted.
	ErrAbsentNumber = errors.New("absent number")

	errExponentRange = fmt.Errorf("exponent out of range: %w", ErrInvalidNumberFormat)
)

// Fraction represents an exact rational number num / den over
// arbitrary-precision integers.
// Fractions are never reduced to lowest terms, and the sign may live on
// either component.
// The zero value corresponds to 0/1.
// Fraction is designed to be safe for concurrent use by multiple goroutines:
// every operation returns a new fraction, and the underlying integers are
// never modified after construction.
type Fraction struct {
	num *big.Int // numerator
	den *big.Int // denominator, never zero
}

// newFractionUnsafe creates a fraction without checking the denominator.
// The arguments are owned by the result and must not be modified afterwards.
func newFractionUnsafe(num, den *big.Int) Fraction {
	return Fraction{num: num, den: den}
}

// NewFraction returns a fraction equal to num / den.
// The arguments are copied.
//
// NewFraction returns an error if den is nil or zero.
func NewFraction(num, den *big.Int) (Fraction, error) {
	if num == nil {
		num = bigZero
	}
	if den == nil || den.Sign() == 0 {
		return Fraction{}, fmt.Errorf("creating fraction %v/%v: %w", num, den, ErrDivisionByZero)
	}
	return newFractionUnsafe(new(big.Int).Set(num), new(big.Int).Set(den)), nil
}

// MustNewFraction is like [NewFraction] but panics if the fraction cannot be constructed.
func MustNewFraction(num, den *big.Int) Fraction {
	f, err := NewFraction(num, den)
	if err != nil {
		panic(fmt.Sprintf("NewFraction(%v, %v) failed: %v", num, den, err))
	}
	return f
}

// NewFractionFromInt64 returns a fraction equal to num / den.
//
// NewFractionFromInt64 returns an error if den is zero.
func NewFractionFromInt64(num, den int64) (Fraction, error) {
	return NewFraction(big.NewInt(num), big.NewInt(den))
}

// MustNewFractionFromInt64 is like [NewFractionFromInt64] but panics if den is zero.
// It simplifies safe initialization of global variables holding fractions.
func MustNewFractionFromInt64(num, den int64) Fraction {
	f, err := NewFractionFromInt64(num, den)
	if err != nil {
		panic(fmt.Sprintf("NewFractionFromInt64(%v, %v) failed: %v", num, den, err))
	}
	return f
}

// NewFractionFromString returns a fraction equal to num / den, where both
// strings are decimal integers matching ^-?[0-9]+$.
// To parse a decimal literal such as "1.25e3", use [ParseFraction].
//
// NewFractionFromString returns an error if:
//   - either string is not an integer string ([ErrInvalidOperand]);
//   - den is zero ([ErrDivisionByZero]).
func NewFractionFromString(num, den string) (Fraction, error) {
	n, err := parseBigInt(num)
	if err != nil {
		return Fraction{}, fmt.Errorf("creating fraction: %w", err)
	}
	d, err := parseBigInt(den)
	if err != nil {
		return Fraction{}, fmt.Errorf("creating fraction: %w", err)
	}
	if d.Sign() == 0 {
		return Fraction{}, fmt.Errorf("creating fraction %v/%v: %w", num, den, ErrDivisionByZero)
	}
	return newFractionUnsafe(n, d), nil
}

// NewFractionFromFloat64 returns a fraction equal to num / den, where both
// floats must be whole numbers within ±[MaxSafeInteger].
//
// NewFractionFromFloat64 returns an error if:
//   - either float is fractional, special or out of range ([ErrInvalidOperand]);
//   - den is zero ([ErrDivisionByZero]).
func NewFractionFromFloat64(num, den float64) (Fraction, error) {
	n, err := bigIntFromFloat64(num)
	if err != nil {
		return Fraction{}, fmt.Errorf("creating fraction: %w", err)
	}
	d, err := bigIntFromFloat64(den)
	if err != nil {
		return Fraction{}, fmt.Errorf("creating fraction: %w", err)
	}
	if d.Sign() == 0 {
		return Fraction{}, fmt.Errorf("creating fraction %v/%v: %w", num, den, ErrDivisionByZero)
	}
	return newFractionUnsafe(n, d), nil
}

// NewFractionFromRat returns a fraction equal to r.
func NewFractionFromRat(r *big.Rat) Fraction {
	return newFractionUnsafe(new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom()))
}

func (f Fraction) n() *big.Int {
	if f.num == nil {
		return bigZero
	}
	return f.num
}

func (f Fraction) d() *big.Int {
	if f.den == nil {
		return bigOne
	}
	return f.den
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int {
	return new(big.Int).Set(f.n())
}

// Den returns a copy of the denominator.
func (f Fraction) Den() *big.Int {
	return new(big.Int).Set(f.d())
}

// Rat returns the value of the fraction as a [big.Rat].
// Unlike the fraction itself, the result is reduced to lowest terms.
func (f Fraction) Rat() *big.Rat {
	return new(big.Rat).SetFrac(f.n(), f.d())
}

// Quotient returns num / den truncated toward zero.
// For negative fractions this differs from floor division:
// the quotient of -7/2 is -3, not -4.
func (f Fraction) Quotient() *big.Int {
	return new(big.Int).Quo(f.n(), f.d())
}

// Invert returns den / num.
//
// Invert returns an error if the fraction is zero.
func (f Fraction) Invert() (Fraction, error) {
	if f.IsZero() {
		return Fraction{}, fmt.Errorf("inverting %v: %w", f, ErrDivisionByZero)
	}
	return newFractionUnsafe(f.Den(), f.Num()), nil
}

// Sign returns:
//
//	-1 if f < 0
//	 0 if f = 0
//	+1 if f > 0
func (f Fraction) Sign() int {
	return f.n().Sign() * f.d().Sign()
}

// IsNeg returns true if f < 0, that is, if the numerator is not zero and
// exactly one of the numerator and the denominator is negative.
// A zero fraction is never negative, whatever the sign of its denominator,
// so 0/-1 is not negative and 1/-1 equals -1/1.
func (f Fraction) IsNeg() bool {
	return f.Sign() < 0
}

// IsZero returns:
//
//	true  if f = 0
//	false otherwise
func (f Fraction) IsZero() bool {
	return f.n().Sign() == 0
}

// Abs returns the absolute value of the fraction.
func (f Fraction) Abs() Fraction {
	if f.IsNeg() {
		return f.Neg()
	}
	return f
}

// Neg returns a fraction with the opposite sign.
func (f Fraction) Neg() Fraction {
	return newFractionUnsafe(new(big.Int).Neg(f.n()), f.Den())
}

// Add returns the exact sum f + g.
// When the denominators are equal the numerators are added directly,
// otherwise the result has denominator f.den * g.den.
func (f Fraction) Add(g Fraction) Fraction {
	a, b, c, d := f.n(), f.d(), g.n(), g.d()
	if b.Cmp(d) == 0 {
		return newFractionUnsafe(new(big.Int).Add(a, c), new(big.Int).Set(b))
	}
	num := new(big.Int).Mul(a, d)
	num.Add(num, new(big.Int).Mul(c, b))
	return newFractionUnsafe(num, new(big.Int).Mul(b, d))
}

// Sub returns the exact difference f - g.
// See also method [Fraction.Add].
func (f Fraction) Sub(g Fraction) Fraction {
	a, b, c, d := f.n(), f.d(), g.n(), g.d()
	if b.Cmp(d) == 0 {
		return newFractionUnsafe(new(big.Int).Sub(a, c), new(big.Int).Set(b))
	}
	num := new(big.Int).Mul(a, d)
	num.Sub(num, new(big.Int).Mul(c, b))
	return newFractionUnsafe(num, new(big.Int).Mul(b, d))
}

// Mul returns the exact product f * g.
func (f Fraction) Mul(g Fraction) Fraction {
	return newFractionUnsafe(
		new(big.Int).Mul(f.n(), g.n()),
		new(big.Int).Mul(f.d(), g.d()),
	)
}

// Div returns the exact quotient f / g.
//
// Div returns an error if g is zero.
func (f Fraction) Div(g Fraction) (Fraction, error) {
	if g.IsZero() {
		return Fraction{}, fmt.Errorf("computing [%v / %v]: %w", f, g, ErrDivisionByZero)
	}
	return newFractionUnsafe(
		new(big.Int).Mul(f.n(), g.d()),
		new(big.Int).Mul(f.d(), g.n()),
	), nil
}

// Cmp compares fractions exactly and returns:
//
//	-1 if f < g
//	 0 if f = g
//	+1 if f > g
func (f Fraction) Cmp(g Fraction) int {
	return f.Sub(g).Sign()
}

// Lt returns true if f < g.
func (f Fraction) Lt(g Fraction) bool {
	return f.Sub(g).IsNeg()
}

// Eq returns true if |f - g| < 10^(-precision).
// This is a tolerance-based comparison; use [Fraction.Cmp] for exact equality.
//
// Eq panics if precision is negative.
func (f Fraction) Eq(g Fraction, precision int) bool {
	if precision < 0 {
		panic(fmt.Sprintf("%v.Eq(%v, %v) failed: negative precision", f, g, precision))
	}
	tol := newFractionUnsafe(bigOne, pow10(precision))
	return f.Sub(g).Abs().Lt(tol)
}

// String implements the [fmt.Stringer] interface and returns the fraction
// in the "num/den" form, without reduction.
// See also methods [Fraction.ToFixed] and [Fraction.ToSignificant].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (f Fraction) String() string {
	return f.n().String() + "/" + f.d().String()
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Fraction.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (f Fraction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The text may be either in the "num/den" form or a decimal literal
// accepted by [ParseDecimal].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (f *Fraction) UnmarshalText(text []byte) error {
	var (
		g   Fraction
		err error
	)
	if num, den, ok := strings.Cut(string(text), "/"); ok {
		g, err = NewFractionFromString(num, den)
	} else {
		g, err = ParseFraction(string(text))
	}
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", g, err)
	}
	*f = g
	return nil
}

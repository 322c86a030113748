package asset

import (
	"fmt"
	"math/big"
	"strings"
)

// Rounding is a policy applied when a value is rendered with fewer digits
// than it has.
// Every policy is decided on the exact remainder of an integer division,
// never on a binary floating-point approximation.
type Rounding uint8

const (
	// RoundDown truncates toward zero.
	RoundDown Rounding = iota
	// RoundHalfUp rounds to the nearest value, and half away from zero.
	RoundHalfUp
	// RoundUp rounds away from zero whenever the remainder is not zero.
	RoundUp
)

// String implements the [fmt.Stringer] interface.
func (r Rounding) String() string {
	switch r {
	case RoundDown:
		return "ROUND_DOWN"
	case RoundHalfUp:
		return "ROUND_HALF_UP"
	case RoundUp:
		return "ROUND_UP"
	}
	return fmt.Sprintf("Rounding(%d)", uint8(r))
}

// FormatOption configures rendering of [Fraction] and [Amount] values.
type FormatOption func(*formatConfig)

type formatConfig struct {
	groupSep string
}

// WithGroupSeparator inserts sep between every three digits of the integer part.
// The default is no grouping.
func WithGroupSeparator(sep string) FormatOption {
	return func(c *formatConfig) {
		c.groupSep = sep
	}
}

func newFormatConfig(opts []FormatOption) formatConfig {
	var c formatConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// roundQuo adjusts the truncated quotient q = a / b, where r is the remainder
// and a, b, q, r are non-negative, according to the rounding policy.
// q is modified in place.
func roundQuo(q, r, b *big.Int, rm Rounding) {
	if r.Sign() == 0 {
		return
	}
	switch rm {
	case RoundDown:
		// skip
	case RoundHalfUp:
		twice := new(big.Int).Mul(r, bigTwo)
		if twice.Cmp(b) >= 0 {
			q.Add(q, bigOne)
		}
	case RoundUp:
		q.Add(q, bigOne)
	default:
		panic(fmt.Sprintf("unknown rounding policy %v", rm))
	}
}

// absParts returns |num| and |den| as fresh integers.
func (f Fraction) absParts() (*big.Int, *big.Int) {
	return new(big.Int).Abs(f.n()), new(big.Int).Abs(f.d())
}

// scaledQuo returns |f| * 10^scale rounded to an integer.
// A negative scale divides by 10^(-scale) instead.
func (f Fraction) scaledQuo(scale int, rm Rounding) *big.Int {
	a, b := f.absParts()
	if scale >= 0 {
		a.Mul(a, pow10(scale))
	} else {
		b.Mul(b, pow10(-scale))
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	roundQuo(q, r, b, rm)
	return q
}

// ToFixed returns the fraction rendered with exactly places digits after the
// decimal point, rounded using rm.
// Negative zero is rendered without a sign.
//
// ToFixed panics if places is negative.
func (f Fraction) ToFixed(places int, rm Rounding, opts ...FormatOption) string {
	if places < 0 {
		panic(fmt.Sprintf("%v.ToFixed(%v) failed: negative number of decimal places", f, places))
	}
	c := newFormatConfig(opts)
	q := f.scaledQuo(places, rm)
	return formatScaled(f.IsNeg() && q.Sign() != 0, q.String(), places, false, c)
}

// ToSignificant returns the fraction rounded to digits significant digits
// using rm.
// Leading zeros of a value below one do not count toward the digits, and
// trailing zeros after the decimal point are removed from the result.
//
// ToSignificant panics if digits is less than 1.
func (f Fraction) ToSignificant(digits int, rm Rounding, opts ...FormatOption) string {
	if digits < 1 {
		panic(fmt.Sprintf("%v.ToSignificant(%v) failed: number of digits must be positive", f, digits))
	}
	c := newFormatConfig(opts)
	if f.IsZero() {
		return "0"
	}
	scale := digits - 1 - f.exponent()
	q := f.scaledQuo(scale, rm)
	neg := f.IsNeg() && q.Sign() != 0
	if scale <= 0 {
		digs := q.String()
		if q.Sign() != 0 {
			digs += strings.Repeat("0", -scale)
		}
		return formatScaled(neg, digs, 0, true, c)
	}
	return formatScaled(neg, q.String(), scale, true, c)
}

// exponent returns floor(log10(|f|)) for a non-zero fraction.
func (f Fraction) exponent() int {
	a, b := f.absParts()
	e := len(a.String()) - len(b.String())
	// |f| >= 10^e  <=>  a >= b * 10^e
	if e >= 0 {
		b.Mul(b, pow10(e))
	} else {
		a.Mul(a, pow10(-e))
	}
	if a.Cmp(b) < 0 {
		e--
	}
	return e
}

// formatScaled renders digs / 10^scale, where digs is an unsigned integer string.
// If trim is true, trailing fractional zeros and a dangling point are removed.
func formatScaled(neg bool, digs string, scale int, trim bool, c formatConfig) string {
	if len(digs) <= scale {
		digs = strings.Repeat("0", scale-len(digs)+1) + digs
	}
	intdig, frcdig := digs[:len(digs)-scale], digs[len(digs)-scale:]
	if trim {
		frcdig = strings.TrimRight(frcdig, "0")
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(groupDigits(intdig, c.groupSep))
	if frcdig != "" {
		b.WriteByte('.')
		b.WriteString(frcdig)
	}
	return b.String()
}

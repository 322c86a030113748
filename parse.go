package asset

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MaxExponent is the largest absolute exponent accepted by [ParseDecimal].
const MaxExponent = 1_000_000

// DecimalInfo is the result of parsing a decimal literal.
// Int and Frac hold the digits on either side of the decimal point after
// the exponent, if any, has been applied.
// The value of the literal is exactly Num / Den.
type DecimalInfo struct {
	Neg  bool     // leading minus sign
	Int  string   // integer digits, possibly empty
	Frac string   // fractional digits, possibly empty
	Num  *big.Int // signed numerator
	Den  *big.Int // 10^len(Frac)
}

// ParseDecimal converts a decimal literal to an exact numerator and denominator.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	.5
//	1.23e2
//	0.22E-9
//
// The formal EBNF grammar for the supported format is as follows:
//
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits [ '.' digits ]
//	exponent       ::= ('e' | 'E') [ '+' | '-' ] digits
//	numeric-string ::= [ '-' ] significand [ exponent ]
//
// Commas are treated as group separators and removed before parsing.
// The empty string, as well as a lone sign or point, represents 0.
//
// ParseDecimal returns an error wrapping [ErrInvalidNumberFormat] if the string
// does not match the grammar.
func ParseDecimal(s string) (DecimalInfo, error) {
	info, err := parseDecimal(s)
	if err != nil {
		return DecimalInfo{}, fmt.Errorf("parsing decimal %q: %w", s, err)
	}
	return info, nil
}

func parseDecimal(s string) (DecimalInfo, error) {
	var (
		pos    int
		width  int
		neg    bool
		intdig string
		frcdig string
		eneg   bool
		exp    string
		hase   bool
	)

	s = strings.ReplaceAll(s, ",", "")
	width = len(s)

	// Sign
	if pos < width && s[pos] == '-' {
		neg = true
		pos++
	}

	// Integer
	start := pos
	for pos < width && isDigit(s[pos]) {
		pos++
	}
	intdig = s[start:pos]

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		start = pos
		for pos < width && isDigit(s[pos]) {
			pos++
		}
		frcdig = s[start:pos]
	}

	// Exponential part
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		hase = true
		pos++
		switch {
		case pos == width:
			// skip
		case s[pos] == '-':
			eneg = true
			pos++
		case s[pos] == '+':
			pos++
		}
		start = pos
		for pos < width && isDigit(s[pos]) {
			pos++
		}
		exp = s[start:pos]
	}

	if pos != width {
		return DecimalInfo{}, fmt.Errorf("invalid character %q: %w", s[pos], ErrInvalidNumberFormat)
	}
	if hase && exp == "" {
		return DecimalInfo{}, fmt.Errorf("no exponent: %w", ErrInvalidNumberFormat)
	}
	if hase && intdig == "" && frcdig == "" {
		return DecimalInfo{}, fmt.Errorf("no coefficient: %w", ErrInvalidNumberFormat)
	}

	if hase {
		shift, err := strconv.Atoi(exp)
		if err != nil {
			return DecimalInfo{}, fmt.Errorf("exponent %v: %w", exp, ErrInvalidNumberFormat)
		}
		if shift > MaxExponent {
			return DecimalInfo{}, fmt.Errorf("exponent %v: %w", exp, errExponentRange)
		}
		if eneg {
			shift = -shift
		}
		intdig, frcdig = shiftPoint(intdig, frcdig, shift)
	}

	return newDecimalInfo(neg, intdig, frcdig), nil
}

// shiftPoint moves the decimal point separating intdig and frcdig
// by shift positions to the right (or to the left, if shift is negative).
func shiftPoint(intdig, frcdig string, shift int) (string, string) {
	digs := intdig + frcdig
	point := len(intdig) + shift
	switch {
	case point >= len(digs):
		return digs + strings.Repeat("0", point-len(digs)), ""
	case point <= 0:
		return "", strings.Repeat("0", -point) + digs
	default:
		return digs[:point], digs[point:]
	}
}

func newDecimalInfo(neg bool, intdig, frcdig string) DecimalInfo {
	num, ok := new(big.Int).SetString(intdig+frcdig, 10)
	if !ok {
		num = new(big.Int)
	}
	if neg {
		num.Neg(num)
	}
	return DecimalInfo{
		Neg:  neg,
		Int:  intdig,
		Frac: frcdig,
		Num:  num,
		Den:  new(big.Int).Set(pow10(len(frcdig))),
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Fraction returns the exact value of the literal.
func (i DecimalInfo) Fraction() Fraction {
	if i.Num == nil || i.Den == nil {
		return Fraction{}
	}
	return newFractionUnsafe(new(big.Int).Set(i.Num), new(big.Int).Set(i.Den))
}

// ParseFraction converts a decimal literal to an exact fraction.
// See [ParseDecimal] for the supported format.
func ParseFraction(s string) (Fraction, error) {
	info, err := ParseDecimal(s)
	if err != nil {
		return Fraction{}, err
	}
	return info.Fraction(), nil
}

// MustParseFraction is like [ParseFraction] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding fractions.
func MustParseFraction(s string) Fraction {
	f, err := ParseFraction(s)
	if err != nil {
		panic(fmt.Sprintf("ParseFraction(%q) failed: %v", s, err))
	}
	return f
}

package asset

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/govalues/decimal"
	shopspring "github.com/shopspring/decimal"
)

type numberKind uint8

const (
	kindAbsent numberKind = iota
	kindBigInt
	kindString
	kindFloat
	kindFraction
	kindAmount
)

// Number is a number-like operand accepted by the comparison helpers:
// an integer, a decimal string, a float, a [Fraction] or an [Amount].
// The zero value is an absent number.
// Use [ToFraction] to obtain its exact value.
type Number struct {
	kind numberKind
	i    *big.Int
	s    string
	f    float64
	frac Fraction
	amt  Amount
}

// NewNumberFromBigInt returns a number equal to the integer i.
// A nil integer is an absent number.
func NewNumberFromBigInt(i *big.Int) Number {
	if i == nil {
		return Number{}
	}
	return Number{kind: kindBigInt, i: new(big.Int).Set(i)}
}

// NewNumberFromInt64 returns a number equal to the integer i.
func NewNumberFromInt64(i int64) Number {
	return Number{kind: kindBigInt, i: big.NewInt(i)}
}

// NewNumberFromString returns a number holding a decimal literal.
// The literal is validated by [ToFraction], see [ParseDecimal] for the
// supported format.
func NewNumberFromString(s string) Number {
	return Number{kind: kindString, s: s}
}

// NewNumberFromFloat64 returns a number equal to the shortest decimal
// representation of f.
func NewNumberFromFloat64(f float64) Number {
	return Number{kind: kindFloat, f: f}
}

// NewNumberFromFraction returns a number equal to f.
func NewNumberFromFraction(f Fraction) Number {
	return Number{kind: kindFraction, frac: f}
}

// NewNumberFromAmount returns a number equal to a.
func NewNumberFromAmount(a Amount) Number {
	return Number{kind: kindAmount, amt: a}
}

// NewNumberFromDecimal returns a number equal to d.
func NewNumberFromDecimal(d decimal.Decimal) Number {
	return Number{kind: kindString, s: d.String()}
}

// NewNumberFromShopspring returns a number equal to d.
func NewNumberFromShopspring(d shopspring.Decimal) Number {
	return Number{kind: kindString, s: d.String()}
}

// IsAbsent returns true for the zero value of Number.
func (n Number) IsAbsent() bool {
	return n.kind == kindAbsent
}

// ToFraction returns the exact value of a number.
//
// ToFraction returns an error if:
//   - the number is absent ([ErrAbsentNumber]);
//   - a string does not match the decimal grammar ([ErrInvalidNumberFormat]);
//   - a float is a special value ([ErrInvalidOperand]).
func ToFraction(n Number) (Fraction, error) {
	switch n.kind {
	case kindBigInt:
		return newFractionUnsafe(new(big.Int).Set(n.i), big.NewInt(1)), nil
	case kindString:
		return ParseFraction(n.s)
	case kindFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return Fraction{}, fmt.Errorf("converting float: special value %v: %w", n.f, ErrInvalidOperand)
		}
		return ParseFraction(strconv.FormatFloat(n.f, 'f', -1, 64))
	case kindFraction:
		return n.frac, nil
	case kindAmount:
		return n.amt.Raw(), nil
	}
	return Fraction{}, ErrAbsentNumber
}

// ToBaseUnits returns the value of a number multiplied by 10^decimals and
// truncated toward zero.
// For example, "1.5" with 9 decimals is 1500000000.
// The value is not rounded before truncation: "0.996" with 0 decimals is 0,
// not 1.
//
// ToBaseUnits returns an error if the number cannot be converted by [ToFraction].
func ToBaseUnits(n Number, decimals uint32) (*big.Int, error) {
	f, err := ToFraction(n)
	if err != nil {
		return nil, fmt.Errorf("converting to base units: %w", err)
	}
	units := f.scaledQuo(int(decimals), RoundDown)
	if f.IsNeg() {
		units.Neg(units)
	}
	return units, nil
}

// diffSign returns the sign of a - b.
// The boolean is false if either number is absent or cannot be converted.
func diffSign(a, b Number) (int, bool) {
	if a.IsAbsent() || b.IsAbsent() {
		return 0, false
	}
	fa, err := ToFraction(a)
	if err != nil {
		return 0, false
	}
	fb, err := ToFraction(b)
	if err != nil {
		return 0, false
	}
	return fa.Sub(fb).Sign(), true
}

// Lt returns true if a < b.
// It returns false if either number is absent or invalid.
func Lt(a, b Number) bool {
	s, ok := diffSign(a, b)
	return ok && s < 0
}

// Gt returns true if a > b.
// It returns false if either number is absent or invalid.
func Gt(a, b Number) bool {
	s, ok := diffSign(a, b)
	return ok && s > 0
}

// Lte returns true if a <= b.
// It returns false if either number is absent or invalid.
func Lte(a, b Number) bool {
	s, ok := diffSign(a, b)
	return ok && s <= 0
}

// Gte returns true if a >= b.
// It returns false if either number is absent or invalid.
func Gte(a, b Number) bool {
	s, ok := diffSign(a, b)
	return ok && s >= 0
}

// Eq returns true if a = b exactly.
// It returns false if either number is absent or invalid.
func Eq(a, b Number) bool {
	s, ok := diffSign(a, b)
	return ok && s == 0
}

// IsMeaningful returns true if n is present, valid and not zero.
func IsMeaningful(n Number) bool {
	s, ok := diffSign(n, NewNumberFromInt64(0))
	return ok && s != 0
}

// IsMeaningless returns true if n is absent, invalid or zero.
func IsMeaningless(n Number) bool {
	return !IsMeaningful(n)
}

// CompareOp selects the predicate evaluated by [Compare].
type CompareOp uint8

const (
	OpLt  CompareOp = iota // a < b
	OpGt                   // a > b
	OpLte                  // a <= b
	OpGte                  // a >= b
	OpEq                   // a = b
)

// String implements the [fmt.Stringer] interface.
func (op CompareOp) String() string {
	switch op {
	case OpLt:
		return "lt"
	case OpGt:
		return "gt"
	case OpLte:
		return "lte"
	case OpGte:
		return "gte"
	case OpEq:
		return "eq"
	}
	return fmt.Sprintf("CompareOp(%d)", uint8(op))
}

// ParseCompareOp converts an operator name to a [CompareOp].
// Both the short ("lt", "gte") and the long ("lessThan", "greatThanEqual")
// names are accepted.
func ParseCompareOp(s string) (CompareOp, error) {
	switch s {
	case "lt", "lessThan":
		return OpLt, nil
	case "gt", "greatThan":
		return OpGt, nil
	case "lte", "lessThanEqual":
		return OpLte, nil
	case "gte", "greatThanEqual":
		return OpGte, nil
	case "eq", "equal":
		return OpEq, nil
	}
	return 0, fmt.Errorf("parsing comparison operator %q: %w", s, ErrInvalidOperand)
}

// Compare evaluates the predicate selected by op.
// It returns false for an unknown operator.
func Compare(op CompareOp, a, b Number) bool {
	switch op {
	case OpLt:
		return Lt(a, b)
	case OpGt:
		return Gt(a, b)
	case OpLte:
		return Lte(a, b)
	case OpGte:
		return Gte(a, b)
	case OpEq:
		return Eq(a, b)
	}
	return false
}

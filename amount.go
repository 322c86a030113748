package asset

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
	shopspring "github.com/shopspring/decimal"
)

// ScalarDecimals is the scale used by [Amount.AddN], [Amount.SubN],
// [Amount.MulN] and [Amount.DivN] to quantize their float64 operand,
// regardless of the scale of the receiver.
const ScalarDecimals = 8

// Amount type represents a quantity of a fungible asset with a fixed number
// of decimal places, such as a token balance.
// Its value is always a multiple of 10^(-decimals).
// The zero value corresponds to 0 with zero decimals.
// Amount is designed to be safe for concurrent use by multiple goroutines.
type Amount struct {
	decimals uint32   // scale, fixed at construction
	value    Fraction // numerator / 10^decimals
}

// newAmountUnsafe creates a new amount from base units without copying.
// Use it only if units is not shared with anything else.
func newAmountUnsafe(decimals uint32, units *big.Int) Amount {
	den := new(big.Int).Set(pow10(int(decimals)))
	return Amount{decimals: decimals, value: newFractionUnsafe(units, den)}
}

// newAmountFromFraction quantizes f to the given scale using rm.
func newAmountFromFraction(decimals uint32, f Fraction, rm Rounding) Amount {
	units := f.scaledQuo(int(decimals), rm)
	if f.IsNeg() {
		units.Neg(units)
	}
	return newAmountUnsafe(decimals, units)
}

// SplitNumber splits a plain decimal string into its integer part and
// its fractional part truncated or right-padded to exactly decimals digits.
// When decimals is zero, the fractional part is returned unchanged.
// The sign, if any, stays with the integer part.
//
// SplitNumber returns an error if the string contains more than one point.
func SplitNumber(num string, decimals uint32) (string, string, error) {
	intdig, frcdig, ok := strings.Cut(num, ".")
	if !ok {
		return num, "0", nil
	}
	if strings.Contains(frcdig, ".") {
		return "", "", fmt.Errorf("splitting %q: %w", num, ErrInvalidNumberFormat)
	}
	if d := int(decimals); d > 0 {
		if len(frcdig) < d {
			frcdig += strings.Repeat("0", d-len(frcdig))
		}
		frcdig = frcdig[:d]
	}
	return intdig, frcdig, nil
}

// NewAmount converts a human-readable decimal string to an amount with the
// given number of decimal places.
// For example, "10.12" with 9 decimals is 10.12 whole units, or
// 10120000000 base units.
// Fractional digits beyond decimals are dropped, not rounded.
// See [ParseDecimal] for the supported format.
//
// NewAmount returns an error wrapping [ErrInvalidNumberFormat] if the string
// is not a valid decimal literal.
func NewAmount(decimals uint32, value string) (Amount, error) {
	a, err := newAmount(decimals, value)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %q to amount: %w", value, err)
	}
	return a, nil
}

func newAmount(decimals uint32, value string) (Amount, error) {
	info, err := parseDecimal(value)
	if err != nil {
		return Amount{}, err
	}
	d := int(decimals)
	frcdig := info.Frac
	if len(frcdig) < d {
		frcdig += strings.Repeat("0", d-len(frcdig))
	}
	units, ok := new(big.Int).SetString(info.Int+frcdig[:d], 10)
	if !ok {
		units = new(big.Int)
	}
	if info.Neg {
		units.Neg(units)
	}
	return newAmountUnsafe(decimals, units), nil
}

// MustNewAmount is like [NewAmount] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewAmount(decimals uint32, value string) Amount {
	a, err := NewAmount(decimals, value)
	if err != nil {
		panic(fmt.Sprintf("NewAmount(%v, %q) failed: %v", decimals, value, err))
	}
	return a
}

// NewAmountFromInt64 returns an amount equal to value whole units.
func NewAmountFromInt64(decimals uint32, value int64) Amount {
	return NewAmountFromBigInt(decimals, big.NewInt(value))
}

// NewAmountFromBigInt returns an amount equal to value whole units.
// To convert base units, use [FromChain].
func NewAmountFromBigInt(decimals uint32, value *big.Int) Amount {
	units := new(big.Int).Mul(value, pow10(int(decimals)))
	return newAmountUnsafe(decimals, units)
}

// NewAmountFromFloat64 converts a float to an amount.
// The float is first converted to its shortest decimal representation,
// then digits beyond decimals are dropped.
//
// NewAmountFromFloat64 returns an error if the float is a special value (NaN or Inf).
func NewAmountFromFloat64(decimals uint32, value float64) (Amount, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Amount{}, fmt.Errorf("converting float: special value %v: %w", value, ErrInvalidOperand)
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	a, err := NewAmount(decimals, s)
	if err != nil {
		return Amount{}, fmt.Errorf("converting float: %w", err)
	}
	return a, nil
}

// NewAmountFromDecimal converts a [decimal.Decimal] to an amount.
// Digits beyond decimals are dropped.
// See also method [Amount.Decimal].
func NewAmountFromDecimal(decimals uint32, value decimal.Decimal) (Amount, error) {
	return NewAmount(decimals, value.String())
}

// FromChain converts an integer expressed in base units (the smallest
// indivisible unit of the asset) to an amount.
// For example, 10 base units with 9 decimals is 0.00000001 whole units.
// See also method [Amount.BaseUnits].
func FromChain(decimals uint32, units *big.Int) Amount {
	f := newFractionUnsafe(new(big.Int).Set(units), pow10(int(decimals)))
	return newAmountFromFraction(decimals, f, RoundHalfUp)
}

// ParseChain is like [FromChain] but accepts base units as an integer string.
//
// ParseChain returns an error wrapping [ErrInvalidOperand] if the string is
// not an integer.
func ParseChain(decimals uint32, units string) (Amount, error) {
	u, err := parseBigInt(units)
	if err != nil {
		return Amount{}, fmt.Errorf("converting base units: %w", err)
	}
	return FromChain(decimals, u), nil
}

// MustParseChain is like [ParseChain] but panics if the string cannot be parsed.
func MustParseChain(decimals uint32, units string) Amount {
	a, err := ParseChain(decimals, units)
	if err != nil {
		panic(fmt.Sprintf("ParseChain(%v, %q) failed: %v", decimals, units, err))
	}
	return a
}

// Decimals returns the number of decimal places of the amount.
func (a Amount) Decimals() uint32 {
	return a.decimals
}

// Raw returns the exact value of the amount as a fraction with
// denominator 10^decimals.
func (a Amount) Raw() Fraction {
	return newFractionUnsafe(a.value.Num(), a.den())
}

func (a Amount) den() *big.Int {
	if a.value.den == nil {
		return new(big.Int).Set(pow10(int(a.decimals)))
	}
	return a.value.Den()
}

// BaseUnits returns the amount in base units, that is value * 10^decimals.
// This is the integer representation used on a ledger.
// See also constructor [FromChain].
func (a Amount) BaseUnits() *big.Int {
	return a.value.Num()
}

// Decimal returns the amount as a [decimal.Decimal].
// See also constructor [NewAmountFromDecimal].
//
// Decimal returns an error wrapping [ErrInexactConversion] if the amount
// cannot be represented without losing digits.
func (a Amount) Decimal() (decimal.Decimal, error) {
	s := a.ToExact()
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to %T: %v: %w", s, d, err, ErrInexactConversion)
	}
	b, err := NewAmount(a.Decimals(), d.String())
	if err != nil || b.Cmp(a) != 0 {
		return decimal.Decimal{}, fmt.Errorf("converting %v to %T: %w", s, d, ErrInexactConversion)
	}
	return d, nil
}

// Shopspring returns the amount as a [shopspring.Decimal].
// The conversion is always exact.
func (a Amount) Shopspring() shopspring.Decimal {
	return shopspring.NewFromBigInt(a.BaseUnits(), -int32(a.decimals))
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	return a.value.Sign()
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNeg() bool {
	return a.value.IsNeg()
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	return newAmountUnsafe(a.decimals, new(big.Int).Abs(a.value.n()))
}

// Neg returns an amount with the opposite sign.
func (a Amount) Neg() Amount {
	return newAmountUnsafe(a.decimals, new(big.Int).Neg(a.value.n()))
}

// Add returns the sum of amounts a and b, rounded half up to the decimals of a.
// The decimals of b do not affect the result's scale.
func (a Amount) Add(b Amount) Amount {
	return newAmountFromFraction(a.decimals, a.Raw().Add(b.Raw()), RoundHalfUp)
}

// Sub returns the difference of amounts a and b, rounded half up to the
// decimals of a.
func (a Amount) Sub(b Amount) Amount {
	return newAmountFromFraction(a.decimals, a.Raw().Sub(b.Raw()), RoundHalfUp)
}

// Mul returns the product of amounts a and b, truncated to the decimals of a.
// Truncation never reports more value than exists.
func (a Amount) Mul(b Amount) Amount {
	return newAmountFromFraction(a.decimals, a.Raw().Mul(b.Raw()), RoundDown)
}

// Div returns the quotient of amounts a and b, truncated to the decimals of a.
//
// Div returns an error if b is zero.
func (a Amount) Div(b Amount) (Amount, error) {
	f, err := a.Raw().Div(b.Raw())
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, b, ErrDivisionByZero)
	}
	return newAmountFromFraction(a.decimals, f, RoundDown), nil
}

// scalar converts a float64 operand to an amount with [ScalarDecimals] decimals.
func scalar(e float64) (Amount, error) {
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return Amount{}, fmt.Errorf("converting float: special value %v: %w", e, ErrInvalidOperand)
	}
	return newAmount(ScalarDecimals, strconv.FormatFloat(e, 'f', ScalarDecimals, 64))
}

// AddN is like [Amount.Add] but the operand is a float quantized to
// [ScalarDecimals] decimal places.
//
// AddN returns an error if e is a special value (NaN or Inf).
func (a Amount) AddN(e float64) (Amount, error) {
	b, err := scalar(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, e, err)
	}
	return a.Add(b), nil
}

// SubN is like [Amount.Sub] but the operand is a float quantized to
// [ScalarDecimals] decimal places.
//
// SubN returns an error if e is a special value (NaN or Inf).
func (a Amount) SubN(e float64) (Amount, error) {
	b, err := scalar(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, e, err)
	}
	return a.Sub(b), nil
}

// MulN is like [Amount.Mul] but the operand is a float quantized to
// [ScalarDecimals] decimal places.
//
// MulN returns an error if e is a special value (NaN or Inf).
func (a Amount) MulN(e float64) (Amount, error) {
	b, err := scalar(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return a.Mul(b), nil
}

// DivN is like [Amount.Div] but the operand is a float quantized to
// [ScalarDecimals] decimal places.
//
// DivN returns an error if:
//   - e is a special value (NaN or Inf);
//   - e is zero after quantization.
func (a Amount) DivN(e float64) (Amount, error) {
	b, err := scalar(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, e, err)
	}
	return a.Div(b)
}

// Cmp compares amounts exactly and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// Amounts with different decimals are compared by value.
func (a Amount) Cmp(b Amount) int {
	return a.Raw().Cmp(b.Raw())
}

// Lt returns true if a < b.
func (a Amount) Lt(b Amount) bool {
	return a.Raw().Lt(b.Raw())
}

// Eq returns true if |a - b| < 10^(-precision).
// Like [Fraction.Eq], this is a tolerance-based comparison.
func (a Amount) Eq(b Amount, precision int) bool {
	return a.Raw().Eq(b.Raw(), precision)
}

// ToExact returns the exact value of the amount without trailing zeros.
//
//	1                 -> 1
//	1.234             -> 1.234
//	1.123456789876543 -> 1.123456789 (with 9 decimals)
func (a Amount) ToExact(opts ...FormatOption) string {
	c := newFormatConfig(opts)
	units := a.value.n()
	return formatScaled(units.Sign() < 0, new(big.Int).Abs(units).String(), int(a.decimals), true, c)
}

// ToNative returns the same value as [Amount.ToExact], but it is rendered
// through the fixed-decimal formatter of [Amount.Raw].
func (a Amount) ToNative(opts ...FormatOption) string {
	c := newFormatConfig(opts)
	s := a.Raw().ToFixed(int(a.decimals), RoundHalfUp)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intdig, frcdig, _ := strings.Cut(s, ".")
	frcdig = strings.TrimRight(frcdig, "0")
	s = sign + groupDigits(intdig, c.groupSep)
	if frcdig != "" {
		s += "." + frcdig
	}
	return s
}

// ToFixed returns the amount rendered with exactly places digits after the
// decimal point, rounded using rm.
// The conventional policy for amounts is [RoundDown].
//
// ToFixed returns an error wrapping [ErrPrecisionExceeded] if places is
// greater than the decimals of the amount.
func (a Amount) ToFixed(places int, rm Rounding, opts ...FormatOption) (string, error) {
	if places > int(a.decimals) {
		return "", fmt.Errorf("rendering %v with %v decimal places: the amount has %v: %w", a, places, a.decimals, ErrPrecisionExceeded)
	}
	return a.Raw().ToFixed(places, rm, opts...), nil
}

// MustToFixed is like [Amount.ToFixed] but panics if places is greater than
// the decimals of the amount.
func (a Amount) MustToFixed(places int, rm Rounding, opts ...FormatOption) string {
	s, err := a.ToFixed(places, rm, opts...)
	if err != nil {
		panic(fmt.Sprintf("%v.ToFixed(%v, %v) failed: %v", a, places, rm, err))
	}
	return s
}

// ToSignificant returns the amount rounded to digits significant digits.
// See also method [Fraction.ToSignificant].
func (a Amount) ToSignificant(digits int, rm Rounding, opts ...FormatOption) string {
	return a.Raw().ToSignificant(digits, rm, opts...)
}

// String implements the [fmt.Stringer] interface and returns the exact value
// of the amount.
// See also methods [Amount.ToExact], [Amount.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return a.ToExact()
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example       | Description                 |
//	| ------ | ------------- | --------------------------- |
//	| %s, %v | 10.12         | Exact value                 |
//	| %q     | "10.12"       | Quoted exact value          |
//	| %f     | 10.120000000  | Fixed value, rounded down   |
//	| %d     | 10120000000   | Base units                  |
//
// The '-', '+' and ' ' format flags can be used with all verbs.
// The '0' flag pads %f and %d with leading zeros.
//
// Precision is only supported for the %f verb.
// The default precision is equal to the decimals of the amount; a greater
// precision is clamped to it.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a Amount) Format(state fmt.State, verb rune) {
	var body string
	switch verb {
	case 's', 'S', 'v', 'V', 'q', 'Q':
		body = a.ToExact()
	case 'f', 'F':
		places := int(a.decimals)
		if p, ok := state.Precision(); ok && p < places {
			places = p
		}
		body = a.Raw().ToFixed(places, RoundDown)
	case 'd', 'D':
		body = a.BaseUnits().String()
	default:
		//nolint:errcheck
		fmt.Fprintf(state, "%%!%c(asset.Amount=%v)", verb, a.ToExact())
		return
	}

	// Arithmetic sign
	sign := ""
	if strings.HasPrefix(body, "-") {
		sign, body = "-", body[1:]
	} else if state.Flag('+') {
		sign = "+"
	} else if state.Flag(' ') {
		sign = " "
	}

	// Quotes
	lquote, tquote := "", ""
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = `"`, `"`
	}

	// Padding
	width := len(lquote) + len(sign) + len(body) + len(tquote)
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0') && (verb == 'f' || verb == 'F' || verb == 'd' || verb == 'D'):
			lzeros = w - width
		default:
			lspaces = w - width
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", lspaces))
	b.WriteString(lquote)
	b.WriteString(sign)
	b.WriteString(strings.Repeat("0", lzeros))
	b.WriteString(body)
	b.WriteString(tquote)
	b.WriteString(strings.Repeat(" ", tspaces))

	//nolint:errcheck
	state.Write([]byte(b.String()))
}

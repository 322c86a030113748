package asset

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// MaxSafeInteger is the largest magnitude a float64 operand may have when it
// is used where an exact integer is required.
const MaxSafeInteger = 1<<53 - 1

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
	bigTen  = big.NewInt(10)
)

// pow10Cache holds 10^0 ... 10^63.
// Values in the cache are shared and must never be modified.
var pow10Cache = func() [64]*big.Int {
	var c [64]*big.Int
	c[0] = big.NewInt(1)
	for i := 1; i < len(c); i++ {
		c[i] = new(big.Int).Mul(c[i-1], bigTen)
	}
	return c
}()

// pow10 returns 10^n.
// The result may be shared, callers must treat it as read-only.
func pow10(n int) *big.Int {
	if n < 0 {
		panic(fmt.Sprintf("pow10(%v) failed: negative exponent", n))
	}
	if n < len(pow10Cache) {
		return pow10Cache[n]
	}
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// parseBigInt converts a string matching ^-?[0-9]+$ to an integer.
func parseBigInt(s string) (*big.Int, error) {
	pos := 0
	if pos < len(s) && s[pos] == '-' {
		pos++
	}
	if pos == len(s) {
		return nil, fmt.Errorf("parsing integer %q: no digits: %w", s, ErrInvalidOperand)
	}
	for ; pos < len(s); pos++ {
		if s[pos] < '0' || s[pos] > '9' {
			return nil, fmt.Errorf("parsing integer %q: invalid character %q: %w", s, s[pos], ErrInvalidOperand)
		}
	}
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("parsing integer %q: %w", s, ErrInvalidOperand)
	}
	return z, nil
}

// bigIntFromFloat64 converts a whole float within ±[MaxSafeInteger] to an integer.
func bigIntFromFloat64(f float64) (*big.Int, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return nil, fmt.Errorf("converting float: special value %v: %w", f, ErrInvalidOperand)
	case f != math.Trunc(f):
		return nil, fmt.Errorf("converting float: %v is not an integer: %w", f, ErrInvalidOperand)
	case f >= MaxSafeInteger || f <= -MaxSafeInteger:
		return nil, fmt.Errorf("converting float: %v is out of safe range: %w", f, ErrInvalidOperand)
	}
	return big.NewInt(int64(f)), nil
}

// groupDigits inserts sep between every three digits of an unsigned
// integer string, counting from the right.
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(len(digits) + (len(digits)-1)/3*len(sep))
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

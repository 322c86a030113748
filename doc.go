/*
Package asset implements exact quantities of fungible assets, such as token
balances.
It combines an arbitrary-precision [Fraction] type with an [Amount] type that
fixes the number of decimal places to the precision of the asset on its ledger.

# Features

  - Immutable values, ensuring safe usage across multiple goroutines
  - Parsing of decimal literals, including scientific notation, into exact values
  - Exact addition, subtraction, multiplication and division of fractions
  - Conversion between whole units and ledger base units
  - Rendering to fixed decimal places or significant digits with an explicit
    rounding policy
  - Conversion to and from [github.com/govalues/decimal] and
    [github.com/shopspring/decimal] values

# Representation

A [Fraction] is a pair of [big.Int] values, a numerator and a denominator.
Fractions are never reduced to lowest terms, and their magnitude is not limited.

An [Amount] is a fraction whose denominator is always 10^decimals, where
decimals is the fixed scale of the amount.
Its numerator is the number of base units, the integer representation used on
a ledger. For example, 10.12 units of a token with 9 decimals is stored as
10120000000 / 10^9.

# Operations

Arithmetic on fractions is always exact.
Arithmetic on amounts is performed on the underlying fractions, and the result
is quantized back to the decimals of the left operand:
[Amount.Add] and [Amount.Sub] round half up, while [Amount.Mul] and
[Amount.Div] truncate, so that an amount never reports more value than exists.

# Rounding

Rounding happens only when a value is rendered or quantized.
The package provides three policies: [RoundDown], [RoundHalfUp] and [RoundUp].
All rounding decisions are made on exact integer remainders.

# Errors

Errors may occur when parsing decimal literals and integers, when dividing
by zero, and when a rendering asks for more digits than an amount stores.
Each error wraps one of the exported sentinel errors, such as
[ErrInvalidNumberFormat] or [ErrPrecisionExceeded], which can be tested with
[errors.Is].
Invalid arguments, such as a negative number of decimal places, cause a panic.
*/
package asset

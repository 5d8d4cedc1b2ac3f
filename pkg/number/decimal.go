package number

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// MaxAmount largest amount a balance may reach, 2^256 - 1 smallest units
var MaxAmount = decimal.NewFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), 0)

// Decimal parse v as decimal, zero if v is not a number
func Decimal(v interface{}) decimal.Decimal {
	d, _ := decimal.NewFromString(cast.ToString(v))
	return d
}

// Ceil round up at precision
func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Floor round toward zero at precision
func Floor(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Truncate(0).Shift(-precision)
}

// IsInteger d has no fractional part
func IsInteger(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

// IsAmount d is a positive integer no larger than MaxAmount
func IsAmount(d decimal.Decimal) bool {
	return d.IsPositive() && IsInteger(d) && d.LessThanOrEqual(MaxAmount)
}

// ToUnits convert a human amount to smallest units, rounding toward zero
func ToUnits(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Truncate(0)
}

// FromUnits convert smallest units to a human amount
func FromUnits(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(-precision)
}

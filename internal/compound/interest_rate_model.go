package compound

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerBlock seconds per block
	SecondsPerBlock int64 = 15
	// BlocksPerYear blocks per year
	BlocksPerYear = decimal.NewFromInt(2102400)
	// MaxPricision max pricision of rates
	MaxPricision int32 = 18
)

// UtilizationRate utilization rate
// utilization_rate = market.total_borrows/(market.total_cash + market.borrows - market.reserves)
func UtilizationRate(cash, borrows, reserves decimal.Decimal) decimal.Decimal {
	total := cash.Add(borrows).Sub(reserves)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return quo(borrows, total)
}

// GetExchangeRate underlying per ctoken
// exchange_rate = (market.total_cash + market.total_borrows - market.reserves) / market.ctokens
func GetExchangeRate(totalCash, totalBorrows, totalReserves, tokenSupply, initialExchangeRate decimal.Decimal) decimal.Decimal {
	if !tokenSupply.IsPositive() {
		return initialExchangeRate
	}

	return quo(totalCash.Add(totalBorrows).Sub(totalReserves), tokenSupply)
}

// GetBorrowRatePerBlock borrowRate per block
func GetBorrowRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if kink.Equal(decimal.Zero) ||
		utilizationRate.LessThanOrEqual(kink) {
		return utilizationRate.Mul(GetMultiplierPerBlock(multiplier)).Add(GetBaseRatePerBlock(baseRate)).Truncate(MaxPricision)
	}

	normalRate := kink.Mul(GetMultiplierPerBlock(multiplier)).Add(GetBaseRatePerBlock(baseRate))
	excessUtilRate := utilizationRate.Sub(kink)
	return excessUtilRate.Mul(GetJumpMultiplierPerBlock(jumpMultiplier)).Add(normalRate).Truncate(MaxPricision)
}

// GetSupplyRatePerBlock supply rate per block
func GetSupplyRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink)
	oneMinusReserveFactor := decimal.NewFromInt(1).Sub(reserveFactor)
	rateToPool := borrowRate.Mul(oneMinusReserveFactor)
	return utilizationRate.Mul(rateToPool).Truncate(MaxPricision)
}

// GetBaseRatePerBlock base rate per block
func GetBaseRatePerBlock(baseRate decimal.Decimal) decimal.Decimal {
	return quo(baseRate, BlocksPerYear)
}

// GetMultiplierPerBlock multiplier per block
func GetMultiplierPerBlock(multiplier decimal.Decimal) decimal.Decimal {
	return quo(multiplier, BlocksPerYear)
}

// GetJumpMultiplierPerBlock jump multiplier per block
func GetJumpMultiplierPerBlock(jumpMultiplier decimal.Decimal) decimal.Decimal {
	return quo(jumpMultiplier, BlocksPerYear)
}

// MintTokens ctokens for amount of underlying at exchangeRate, rounded toward zero
func MintTokens(amount, exchangeRate decimal.Decimal) decimal.Decimal {
	if !exchangeRate.IsPositive() {
		return decimal.Zero
	}

	q, _ := amount.QuoRem(exchangeRate, 0)
	return q
}

// quo x / y truncated at MaxPricision decimals
func quo(x, y decimal.Decimal) decimal.Decimal {
	q, _ := x.QuoRem(y, MaxPricision)
	return q
}

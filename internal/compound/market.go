package compound

import (
	"errors"

	"yieldpool/core"

	"github.com/shopspring/decimal"
)

// CurBorrowRate current borrow APY
func CurBorrowRate(market *core.Market) decimal.Decimal {
	return curBorrowRatePerBlockInternal(market).Mul(BlocksPerYear).Truncate(MaxPricision)
}

// CurSupplyRate current supply APY
func CurSupplyRate(market *core.Market) decimal.Decimal {
	return curSupplyRatePerBlockInternal(market).Mul(BlocksPerYear).Truncate(MaxPricision)
}

// CurExchangeRate exchange rate of the market's current state
func CurExchangeRate(market *core.Market) decimal.Decimal {
	return GetExchangeRate(market.TotalCash, market.TotalBorrows, market.Reserves, market.CTokens, market.InitExchangeRate)
}

func curBorrowRatePerBlockInternal(market *core.Market) decimal.Decimal {
	return GetBorrowRatePerBlock(
		UtilizationRate(market.TotalCash, market.TotalBorrows, market.Reserves),
		market.BaseRate,
		market.Multiplier,
		market.JumpMultiplier,
		market.Kink,
	)
}

func curSupplyRatePerBlockInternal(market *core.Market) decimal.Decimal {
	return GetSupplyRatePerBlock(
		UtilizationRate(market.TotalCash, market.TotalBorrows, market.Reserves),
		market.BaseRate,
		market.Multiplier,
		market.JumpMultiplier,
		market.Kink,
		market.ReserveFactor,
	)
}

// AccrueInterest accrue interest of the market up to blockNum
//
// Interest and reserves are whole smallest units, rounded toward zero.
// A blockNum not after market.BlockNumber only refreshes the derived rates.
func AccrueInterest(market *core.Market, blockNum int64) {
	if !market.BorrowIndex.IsPositive() {
		market.BorrowIndex = decimal.New(1, 0)
	}

	if blockDelta := blockNum - market.BlockNumber; blockDelta > 0 {
		borrowRate := curBorrowRatePerBlockInternal(market)
		timesBorrowRate := borrowRate.Mul(decimal.NewFromInt(blockDelta))
		interestAccumulated := market.TotalBorrows.Mul(timesBorrowRate).Truncate(0)

		market.BlockNumber = blockNum
		market.TotalBorrows = market.TotalBorrows.Add(interestAccumulated)
		market.Reserves = market.Reserves.Add(interestAccumulated.Mul(market.ReserveFactor).Truncate(0))
		market.BorrowIndex = market.BorrowIndex.Add(
			timesBorrowRate.Mul(market.BorrowIndex).
				Shift(MaxPricision).Ceil().Shift(-MaxPricision))
	}

	refreshRates(market)
}

func refreshRates(market *core.Market) {
	market.UtilizationRate = UtilizationRate(market.TotalCash, market.TotalBorrows, market.Reserves)
	market.ExchangeRate = CurExchangeRate(market)
	market.SupplyRatePerBlock = curSupplyRatePerBlockInternal(market)
	market.BorrowRatePerBlock = curBorrowRatePerBlockInternal(market)
}

var (
	// ErrMintTooSmall amount buys no ctoken
	ErrMintTooSmall = errors.New("mint amount too small")
	// ErrRedeemNotAllowed market cash can not cover the redemption
	ErrRedeemNotAllowed = errors.New("redeem not allowed")
)

// supplies underlying owned by the ctoken holders
func supplies(market *core.Market) decimal.Decimal {
	return market.TotalCash.Add(market.TotalBorrows).Sub(market.Reserves)
}

// ValueOf underlying equivalent of ctokens, rounded toward zero
//
// The division is exact, a rounded exchange rate would undervalue large positions.
func ValueOf(market *core.Market, ctokens decimal.Decimal) decimal.Decimal {
	total := supplies(market)
	if !market.CTokens.IsPositive() || !total.IsPositive() {
		return decimal.Zero
	}

	q, _ := ctokens.Mul(total).QuoRem(market.CTokens, 0)
	return q
}

// mintTokens ctokens for amount, rounded up so they are worth at least amount
func mintTokens(market *core.Market, amount decimal.Decimal) decimal.Decimal {
	total := supplies(market)
	if !market.CTokens.IsPositive() || !total.IsPositive() {
		if !market.InitExchangeRate.IsPositive() {
			return decimal.Zero
		}

		return quoCeil(amount, market.InitExchangeRate)
	}

	return quoCeil(amount.Mul(market.CTokens), total)
}

// redeemTokens ctokens burned for value, rounded toward zero
func redeemTokens(market *core.Market, value decimal.Decimal) decimal.Decimal {
	total := supplies(market)
	if !total.IsPositive() {
		return decimal.Zero
	}

	q, _ := value.Mul(market.CTokens).QuoRem(total, 0)
	return q
}

func quoCeil(x, y decimal.Decimal) decimal.Decimal {
	q, r := x.QuoRem(y, 0)
	if r.IsPositive() {
		q = q.Add(decimal.New(1, 0))
	}

	return q
}

// Mint supply amount of underlying to the market, returns ctokens minted
//
// The minted ctokens are rounded up: a holder's value never drops below
// its value before the mint plus amount. The market must be accrued to the
// current block first.
func Mint(market *core.Market, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrMintTooSmall
	}

	ctokens := mintTokens(market, amount)
	if !ctokens.IsPositive() {
		return decimal.Zero, ErrMintTooSmall
	}

	market.TotalCash = market.TotalCash.Add(amount)
	market.CTokens = market.CTokens.Add(ctokens)
	refreshRates(market)
	return ctokens, nil
}

// Redeem take value of underlying out of the market, returns ctokens burned
//
// The burned ctokens are rounded down: a holder's value never drops by more
// than value. The market must be accrued to the current block first.
func Redeem(market *core.Market, value decimal.Decimal) (decimal.Decimal, error) {
	if !RedeemAllowed(market, value) {
		return decimal.Zero, ErrRedeemNotAllowed
	}

	ctokens := redeemTokens(market, value)
	if !ctokens.IsPositive() || ctokens.GreaterThan(market.CTokens) {
		return decimal.Zero, ErrRedeemNotAllowed
	}

	market.TotalCash = market.TotalCash.Sub(value)
	market.CTokens = market.CTokens.Sub(ctokens)
	refreshRates(market)
	return ctokens, nil
}

// RedeemAllowed the market holds enough cash above reserves for value
func RedeemAllowed(market *core.Market, value decimal.Decimal) bool {
	supplies := market.TotalCash.Sub(market.Reserves)
	return value.IsPositive() && supplies.GreaterThanOrEqual(value)
}

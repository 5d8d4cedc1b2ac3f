package vault

import (
	"yieldpool/core"

	"github.com/shopspring/decimal"
)

// Excess value of the position not owed to any depositor
//
// excess = value - total_principal, a negative result is a market shortfall.
func Excess(value, totalPrincipal decimal.Decimal) (decimal.Decimal, error) {
	excess := value.Sub(totalPrincipal)
	if err := Require(!excess.IsNegative(), core.ErrMarketShortfall, "vault/excess/market-shortfall", FlagFatal); err != nil {
		return decimal.Zero, err
	}

	return excess, nil
}

// RequireExcess amount must not exceed the excess
func RequireExcess(amount, excess decimal.Decimal) error {
	return Require(amount.LessThanOrEqual(excess), core.ErrExceedsExcess, "vault/withdraw-interest/exceeds-excess", FlagNoisy)
}

// Authorize only the beneficiary may withdraw excess
func Authorize(pool *core.Pool, caller string) error {
	return Require(caller != "" && caller == pool.Beneficiary, core.ErrUnauthorized, "vault/withdraw-interest/unauthorized", FlagNoisy)
}

// CheckInvariants verify the pool against all of its deposits and the current position value
//
// total_principal == Σ principal and value >= total_principal
func CheckInvariants(pool *core.Pool, deposits []*core.Deposit, value decimal.Decimal) error {
	sum := decimal.Zero
	for _, d := range deposits {
		if err := Require(d.PoolID == pool.ID, core.ErrPoolMismatch, "vault/audit/pool-mismatch", FlagFatal); err != nil {
			return err
		}

		if err := Require(!d.Principal.IsNegative(), core.ErrInvariantViolation, "vault/audit/negative-principal", FlagFatal); err != nil {
			return err
		}

		sum = sum.Add(d.Principal)
	}

	if err := Require(sum.Equal(pool.TotalPrincipal), core.ErrInvariantViolation, "vault/audit/total-principal-mismatch", FlagFatal); err != nil {
		return err
	}

	_, err := Excess(value, pool.TotalPrincipal)
	return err
}

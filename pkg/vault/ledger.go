package vault

import (
	"yieldpool/core"
	"yieldpool/pkg/number"

	"github.com/shopspring/decimal"
)

// RequireAmount amount must be a positive integer of smallest units
func RequireAmount(amount decimal.Decimal) error {
	if err := Require(amount.LessThanOrEqual(number.MaxAmount), core.ErrAmountOverflow, "vault/amount-overflow", FlagFatal); err != nil {
		return err
	}

	return Require(number.IsAmount(amount), core.ErrInvalidAmount, "vault/invalid-amount", FlagNoisy)
}

// BalanceOf principal of deposit, zero for an unknown depositor
func BalanceOf(deposit *core.Deposit) decimal.Decimal {
	if deposit == nil {
		return decimal.Zero
	}

	return deposit.Principal
}

// Credit increase the depositor principal and the pool total by amount
func Credit(pool *core.Pool, deposit *core.Deposit, amount decimal.Decimal) error {
	if err := RequireAmount(amount); err != nil {
		return err
	}

	if err := Require(deposit.PoolID == pool.ID, core.ErrPoolMismatch, "vault/credit/pool-mismatch", FlagFatal); err != nil {
		return err
	}

	principal := deposit.Principal.Add(amount)
	total := pool.TotalPrincipal.Add(amount)
	if err := Require(total.LessThanOrEqual(number.MaxAmount), core.ErrAmountOverflow, "vault/credit/overflow", FlagFatal); err != nil {
		return err
	}

	deposit.Principal = principal
	pool.TotalPrincipal = total
	return nil
}

// Debit decrease the depositor principal and the pool total by amount
//
// Either the whole amount is debited or nothing is.
func Debit(pool *core.Pool, deposit *core.Deposit, amount decimal.Decimal) error {
	if err := RequireAmount(amount); err != nil {
		return err
	}

	if err := Require(deposit.PoolID == pool.ID, core.ErrPoolMismatch, "vault/debit/pool-mismatch", FlagFatal); err != nil {
		return err
	}

	if err := Require(amount.LessThanOrEqual(deposit.Principal), core.ErrInsufficientBalance, "vault/debit/insufficient-balance", FlagNoisy); err != nil {
		return err
	}

	// total below a single principal means the ledger is corrupted
	if err := Require(amount.LessThanOrEqual(pool.TotalPrincipal), core.ErrInvariantViolation, "vault/debit/total-below-principal", FlagFatal); err != nil {
		return err
	}

	deposit.Principal = deposit.Principal.Sub(amount)
	pool.TotalPrincipal = pool.TotalPrincipal.Sub(amount)
	return nil
}

// AddPosition record shares minted for the pool
func AddPosition(pool *core.Pool, shares decimal.Decimal) error {
	if err := Require(!shares.IsNegative() && number.IsInteger(shares), core.ErrInvalidAmount, "vault/position/invalid-shares", FlagFatal); err != nil {
		return err
	}

	position := pool.Position.Add(shares)
	if err := Require(position.LessThanOrEqual(number.MaxAmount), core.ErrAmountOverflow, "vault/position/overflow", FlagFatal); err != nil {
		return err
	}

	pool.Position = position
	return nil
}

// SubPosition record shares burned from the pool's position
func SubPosition(pool *core.Pool, shares decimal.Decimal) error {
	if err := Require(!shares.IsNegative() && number.IsInteger(shares), core.ErrInvalidAmount, "vault/position/invalid-shares", FlagFatal); err != nil {
		return err
	}

	if err := Require(shares.LessThanOrEqual(pool.Position), core.ErrInvariantViolation, "vault/position/burn-exceeds-position", FlagFatal); err != nil {
		return err
	}

	pool.Position = pool.Position.Sub(shares)
	return nil
}

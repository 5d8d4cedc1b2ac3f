package pool

import (
	"context"

	"yieldpool/core"
	"yieldpool/pkg/vault"

	"github.com/shopspring/decimal"
)

// Deposit credit depositor with amount and supply it to the market
func (s *Service) Deposit(ctx context.Context, depositor string, amount decimal.Decimal) (*core.Transaction, error) {
	return s.execute(ctx, &operation{
		action: core.ActionTypeDeposit,
		userID: depositor,
		amount: amount,
	})
}

// Withdraw pay back amount of the depositor's principal
//
// Principal is always withdrawable, excess is never touched.
func (s *Service) Withdraw(ctx context.Context, depositor string, amount decimal.Decimal) (*core.Transaction, error) {
	return s.execute(ctx, &operation{
		action:    core.ActionTypeWithdraw,
		userID:    depositor,
		recipient: depositor,
		amount:    amount,
	})
}

// Donate supply amount to the market without crediting anyone, it all becomes excess
func (s *Service) Donate(ctx context.Context, donor string, amount decimal.Decimal) (*core.Transaction, error) {
	return s.execute(ctx, &operation{
		action: core.ActionTypeDonate,
		userID: donor,
		amount: amount,
	})
}

// WithdrawInterest pay amount of excess to recipient, caller must be the beneficiary
//
// An empty recipient pays the caller.
func (s *Service) WithdrawInterest(ctx context.Context, caller, recipient string, amount decimal.Decimal) (*core.Transaction, error) {
	if recipient == "" {
		recipient = caller
	}

	return s.execute(ctx, &operation{
		action:     core.ActionTypeWithdrawInterest,
		userID:     caller,
		recipient:  recipient,
		amount:     amount,
		restricted: true,
		check: func(pool *core.Pool, excess decimal.Decimal) error {
			return vault.RequireExcess(amount, excess)
		},
	})
}

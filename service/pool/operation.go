package pool

import (
	"context"
	"fmt"

	"yieldpool/core"
	"yieldpool/pkg/id"
	"yieldpool/pkg/vault"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type operation struct {
	action core.ActionType
	// depositor, donor or the authorized caller
	userID string
	// payout opponent, empty when nothing leaves the pool
	recipient string
	amount    decimal.Decimal
	traceID   string
	// only the beneficiary may run op
	restricted bool
	// extra validation against the fresh pool and excess
	check func(pool *core.Pool, excess decimal.Decimal) error
}

func (op *operation) credits() bool {
	return op.action == core.ActionTypeDeposit
}

func (op *operation) debits() bool {
	return op.action == core.ActionTypeWithdraw
}

func (op *operation) mints() bool {
	return op.action == core.ActionTypeDeposit || op.action == core.ActionTypeDonate
}

// execute run op to completion or leave the pool as it was
//
//  1. load the pool, compute a fresh excess and validate
//  2. commit the ledger mutation
//  3. move funds through the market adapter
//  4. commit position, journal and payout
//
// A failure in 3 reverts 2, a failure in 4 reverses 3 and reverts 2.
func (s *Service) execute(ctx context.Context, op *operation) (*core.Transaction, error) {
	ctx, release, err := s.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if op.traceID == "" {
		op.traceID = id.GenTraceID()
	}

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"action": op.action.String(),
		"user":   op.userID,
		"amount": op.amount,
		"trace":  op.traceID,
	})
	ctx = logger.WithContext(ctx, log)

	transaction, err := s.run(ctx, op)
	if err != nil {
		switch {
		case vault.IsFatal(err):
			log.WithError(err).Errorln("operation aborted")
		default:
			log.WithError(err).Infoln("operation rejected")
		}

		return nil, err
	}

	log.Infoln("operation done")
	return transaction, nil
}

func (s *Service) run(ctx context.Context, op *operation) (*core.Transaction, error) {
	pool, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if op.restricted {
		if err := vault.Authorize(pool, op.userID); err != nil {
			return nil, err
		}
	}

	if err := requireUser(op.userID); err != nil {
		return nil, err
	}

	if op.recipient != "" {
		if err := requireUser(op.recipient); err != nil {
			return nil, err
		}
	}

	if err := vault.RequireAmount(op.amount); err != nil {
		return nil, err
	}

	before, err := s.excess(ctx, pool)
	if err != nil {
		return nil, err
	}

	if op.check != nil {
		if err := op.check(pool, before); err != nil {
			return nil, err
		}
	}

	if err := s.commitLedger(ctx, op, false); err != nil {
		return nil, err
	}

	shares, err := s.interact(ctx, op, false)
	if err != nil {
		if e := s.commitLedger(ctx, op, true); e != nil {
			return nil, fatal("pool/revert-ledger", e)
		}

		return nil, err
	}

	transaction, err := s.settle(ctx, op, shares, before)
	if err != nil {
		if e := s.compensate(ctx, op); e != nil {
			return nil, fatal("pool/compensate", e)
		}

		return nil, err
	}

	return transaction, nil
}

// commitLedger apply the ledger side of op in its own transaction, revert applies the inverse
func (s *Service) commitLedger(ctx context.Context, op *operation, revert bool) error {
	if !op.credits() && !op.debits() {
		return nil
	}

	return s.db.Tx(func(tx *db.DB) error {
		pool, err := s.pools.FindTx(ctx, tx, s.config.PositionAssetID)
		if err != nil {
			return err
		}

		deposit, err := s.deposits.FindTx(ctx, tx, pool.ID, op.userID)
		if err != nil {
			return err
		}

		if op.credits() != revert {
			err = vault.Credit(pool, deposit, op.amount)
		} else {
			err = vault.Debit(pool, deposit, op.amount)
		}

		if err != nil {
			return err
		}

		if err := s.deposits.Save(ctx, tx, deposit); err != nil {
			return err
		}

		return s.pools.Update(ctx, tx, pool)
	})
}

// interact move op.amount into or out of the market, reverse runs the opposite call
func (s *Service) interact(ctx context.Context, op *operation, reverse bool) (decimal.Decimal, error) {
	if op.mints() != reverse {
		shares, err := s.adapter.Mint(ctx, op.amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("market mint: %w", err)
		}

		return shares, nil
	}

	shares, err := s.adapter.Redeem(ctx, op.amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("market redeem: %w", err)
	}

	return shares, nil
}

// settle record the position change, the journal entry and the payout
func (s *Service) settle(ctx context.Context, op *operation, shares, before decimal.Decimal) (*core.Transaction, error) {
	pool, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if op.mints() {
		err = vault.AddPosition(pool, shares)
	} else {
		err = vault.SubPosition(pool, shares)
	}

	if err != nil {
		return nil, err
	}

	switch op.action {
	case core.ActionTypeDonate:
		pool.Donations = pool.Donations.Add(op.amount)
	case core.ActionTypeWithdrawInterest:
		pool.InterestWithdrawn = pool.InterestWithdrawn.Add(op.amount)
	}

	after, err := s.excess(ctx, pool)
	if err != nil {
		return nil, err
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyShares, shares)
	extra.Put(core.TransactionKeyExcessBefore, before)
	extra.Put(core.TransactionKeyExcessAfter, after)
	extra.Put(core.TransactionKeyTotalPrincipal, pool.TotalPrincipal)
	if op.recipient != "" {
		extra.Put(core.TransactionKeyRecipient, op.recipient)
	}

	var transaction *core.Transaction
	err = s.db.Tx(func(tx *db.DB) error {
		if op.credits() || op.debits() {
			deposit, err := s.deposits.FindTx(ctx, tx, pool.ID, op.userID)
			if err != nil {
				return err
			}

			extra.Put(core.TransactionKeyPrincipal, deposit.Principal)
		}

		if err := s.pools.Update(ctx, tx, pool); err != nil {
			return err
		}

		transaction = core.BuildTransaction(pool, op.action, op.traceID, op.userID, op.amount, extra)
		if err := s.transactions.Create(ctx, tx, transaction); err != nil {
			return err
		}

		if op.recipient == "" {
			return nil
		}

		return s.transfers.Create(ctx, tx, &core.Transfer{
			TraceID:    uuid.Modify(op.traceID, "payout"),
			OpponentID: op.recipient,
			AssetID:    pool.AssetID,
			Amount:     op.amount,
			Memo:       op.action.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// compensate undo the market call and the ledger mutation of a failed settle
func (s *Service) compensate(ctx context.Context, op *operation) error {
	if _, err := s.interact(ctx, op, true); err != nil {
		return err
	}

	return s.commitLedger(ctx, op, true)
}

func fatal(msg string, cause error) error {
	return vault.Require(false, core.ErrInvariantViolation, fmt.Sprintf("%s: %v", msg, cause), vault.FlagFatal)
}

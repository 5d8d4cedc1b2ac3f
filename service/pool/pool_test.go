package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"yieldpool/core"
	"yieldpool/pkg/vault"
	"yieldpool/store/deposit"
	poolstore "yieldpool/store/pool"
	"yieldpool/store/transaction"
	"yieldpool/store/transfer"

	"github.com/fox-one/pkg/store/db"
	"github.com/gofrs/uuid"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMarket prices shares at a settable exchange rate, minted shares round up, the rest rounds toward zero
type fakeMarket struct {
	rate   decimal.Decimal
	shares decimal.Decimal
	err    error
	hook   func(ctx context.Context)
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{rate: decimal.New(1, 0)}
}

func (m *fakeMarket) Mint(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if m.hook != nil {
		m.hook(ctx)
	}

	if m.err != nil {
		return decimal.Zero, m.err
	}

	shares, rem := amount.QuoRem(m.rate, 0)
	if rem.IsPositive() {
		shares = shares.Add(decimal.New(1, 0))
	}
	m.shares = m.shares.Add(shares)
	return shares, nil
}

func (m *fakeMarket) Redeem(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error) {
	if m.hook != nil {
		m.hook(ctx)
	}

	if m.err != nil {
		return decimal.Zero, m.err
	}

	shares, _ := value.QuoRem(m.rate, 0)
	if shares.GreaterThan(m.shares) {
		return decimal.Zero, core.ErrInsufficientLiquidity
	}

	m.shares = m.shares.Sub(shares)
	return shares, nil
}

func (m *fakeMarket) CurrentValue(ctx context.Context, shares decimal.Decimal) (decimal.Decimal, error) {
	return shares.Mul(m.rate).Truncate(0), nil
}

type fixture struct {
	service   *Service
	market    *fakeMarket
	deposits  core.IDepositStore
	journal   core.TransactionStore
	transfers core.ITransferStore
	pool      *core.Pool
}

func newFixture(t *testing.T, adapter core.IMarketAdapter) (*fixture, context.Context) {
	ctx := context.Background()
	database := db.MustOpen(db.SqliteInMemory())
	require.NoError(t, db.Migrate(database))

	f := &fixture{
		deposits:  deposit.New(database),
		journal:   transaction.New(database),
		transfers: transfer.New(database),
	}

	if adapter == nil {
		f.market = newFakeMarket()
		adapter = f.market
	}

	cfg := core.PoolConfig{
		Beneficiary:     "beneficiary",
		AssetID:         uuid.Must(uuid.NewV4()).String(),
		PositionAssetID: uuid.Must(uuid.NewV4()).String(),
	}
	f.service = New(database, cfg, poolstore.New(database), f.deposits, f.journal, f.transfers, adapter)

	pool, err := f.service.Open(ctx)
	require.NoError(t, err)
	f.pool = pool
	return f, ctx
}

// pending payouts of this fixture's pool, the in-memory database is shared by the package
func (f *fixture) pending(t *testing.T, ctx context.Context) []*core.Transfer {
	transfers, err := f.transfers.ListPending(ctx, 1000)
	require.NoError(t, err)

	var out []*core.Transfer
	for _, transfer := range transfers {
		if transfer.AssetID == f.pool.AssetID {
			out = append(out, transfer)
		}
	}

	return out
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReferenceScenario(t *testing.T) {
	f, ctx := newFixture(t, nil)
	s := f.service

	_, err := s.Deposit(ctx, "alice", amount("1000000000000000000"))
	require.NoError(t, err)

	balance, err := s.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", balance.String())

	excess, err := s.Excess(ctx)
	require.NoError(t, err)
	assert.True(t, excess.IsZero())

	// interest accrues in the market
	f.market.rate = amount("1.000999999999999965")

	excess, err = s.Excess(ctx)
	require.NoError(t, err)
	assert.Equal(t, "999999999999965", excess.String())

	_, err = s.Donate(ctx, "bob", amount("100000000000000000"))
	require.NoError(t, err)

	excess, err = s.Excess(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100999999999999965", excess.String())

	balance, err = s.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "donations credit nobody")

	_, err = s.WithdrawInterest(ctx, "beneficiary", "beneficiary", amount("900000000000000000"))
	assert.True(t, errors.Is(err, core.ErrExceedsExcess))

	_, err = s.Withdraw(ctx, "alice", amount("1000000000000000000"))
	require.NoError(t, err)

	balance, err = s.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	_, err = s.Withdraw(ctx, "alice", amount("100000"))
	assert.True(t, errors.Is(err, core.ErrInsufficientBalance))

	f.market.rate = amount("1.015")

	for _, v := range []string{"1", "100000000000000000", "900000000000000000"} {
		_, err = s.WithdrawInterest(ctx, "mallory", "mallory", amount(v))
		assert.True(t, errors.Is(err, core.ErrUnauthorized), v)
	}

	excess, err = s.Excess(ctx)
	require.NoError(t, err)
	assert.Equal(t, "102412587412587382", excess.String())

	tx, err := s.WithdrawInterest(ctx, "beneficiary", "beneficiary", excess)
	require.NoError(t, err)
	assert.Equal(t, core.ActionTypeWithdrawInterest, tx.Action)

	pool, err := s.Pool(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", pool.Position.String(), "one share of rounding residue")
	assert.True(t, pool.TotalPrincipal.IsZero())
	assert.Equal(t, "100000000000000000", pool.Donations.String())
	assert.Equal(t, excess.String(), pool.InterestWithdrawn.String())

	excess, err = s.Excess(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", excess.String())

	transfers := f.pending(t, ctx)
	require.Len(t, transfers, 2)
	assert.Equal(t, "alice", transfers[0].OpponentID)
	assert.Equal(t, "1000000000000000000", transfers[0].Amount.String())
	assert.Equal(t, "beneficiary", transfers[1].OpponentID)
	assert.Equal(t, "102412587412587382", transfers[1].Amount.String())

	journal, err := f.journal.List(ctx, pool.ID, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, journal, 4, "rejected operations are not journaled")
}

func TestDepositWithdrawConservation(t *testing.T) {
	f, ctx := newFixture(t, nil)
	s := f.service
	f.market.rate = amount("1.5")

	_, err := s.Deposit(ctx, "alice", amount("300"))
	require.NoError(t, err)
	_, err = s.Deposit(ctx, "bob", amount("150"))
	require.NoError(t, err)

	tx, err := s.Withdraw(ctx, "bob", amount("150"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"shares":"100","excess_before":"0","excess_after":"0","total_principal":"300","recipient":"bob","principal":"0"}`, string(tx.Data))

	alice, err := s.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "300", alice.String())

	bob, err := s.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, bob.IsZero())

	pool, err := s.Pool(ctx)
	require.NoError(t, err)
	assert.Equal(t, "300", pool.TotalPrincipal.String())

	sum, err := f.deposits.SumOfPrincipal(ctx, pool.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(pool.TotalPrincipal))
}

// checkLedger excess is never negative and the total matches the deposits
func checkLedger(t *testing.T, ctx context.Context, s *Service) {
	excess, err := s.Excess(ctx)
	require.NoError(t, err)
	assert.False(t, excess.IsNegative())

	pool, err := s.Audit(ctx)
	require.NoError(t, err)

	sum, err := s.deposits.SumOfPrincipal(ctx, pool.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(pool.TotalPrincipal), "%s != %s", sum, pool.TotalPrincipal)
}

func TestDepositAtInexactRate(t *testing.T) {
	for _, rate := range []string{"1.3", "0.7", "1.000999999999999965", "3", "0.021"} {
		t.Run(rate, func(t *testing.T) {
			f, ctx := newFixture(t, nil)
			s := f.service
			f.market.rate = amount(rate)

			for _, v := range []string{"10", "1", "777", "123456789", "1000000000000000000"} {
				_, err := s.Deposit(ctx, "alice", amount(v))
				require.NoError(t, err, v)
				checkLedger(t, ctx, s)
			}

			balance, err := s.BalanceOf(ctx, "alice")
			require.NoError(t, err)

			_, err = s.Withdraw(ctx, "alice", balance)
			require.NoError(t, err)
			checkLedger(t, ctx, s)

			// a drained pool takes deposits again
			excess, err := s.Excess(ctx)
			require.NoError(t, err)
			if excess.IsPositive() {
				_, err = s.WithdrawInterest(ctx, "beneficiary", "", excess)
				require.NoError(t, err)
			}

			_, err = s.Deposit(ctx, "bob", amount("10"))
			require.NoError(t, err)
			checkLedger(t, ctx, s)
		})
	}
}

func TestInvalidRequests(t *testing.T) {
	f, ctx := newFixture(t, nil)
	s := f.service

	for _, v := range []string{"0", "-5", "0.5"} {
		_, err := s.Deposit(ctx, "alice", amount(v))
		assert.True(t, errors.Is(err, core.ErrInvalidAmount), v)

		_, err = s.Donate(ctx, "alice", amount(v))
		assert.True(t, errors.Is(err, core.ErrInvalidAmount), v)
	}

	_, err := s.Deposit(ctx, "", amount("1"))
	assert.True(t, errors.Is(err, core.ErrInvalidUser))

	_, err = s.Withdraw(ctx, "nobody", amount("1"))
	assert.True(t, errors.Is(err, core.ErrInsufficientBalance))

	balance, err := s.BalanceOf(ctx, "nobody")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	pool, err := s.Pool(ctx)
	require.NoError(t, err)
	assert.True(t, pool.TotalPrincipal.IsZero())
	assert.True(t, pool.Position.IsZero())
}

func TestWithdrawInterestDoesNotTouchPrincipal(t *testing.T) {
	f, ctx := newFixture(t, nil)
	s := f.service

	_, err := s.Deposit(ctx, "alice", amount("1000"))
	require.NoError(t, err)

	f.market.rate = amount("1.1")

	tx, err := s.WithdrawInterest(ctx, "beneficiary", "", amount("100"))
	require.NoError(t, err)
	assert.Equal(t, "beneficiary", tx.UserID)

	// one unit of excess is left after the share rounding
	_, err = s.WithdrawInterest(ctx, "beneficiary", "treasury", amount("2"))
	assert.True(t, errors.Is(err, core.ErrExceedsExcess))

	balance, err := s.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.String())

	_, err = s.Withdraw(ctx, "alice", amount("1000"))
	require.NoError(t, err)
}

func TestAdapterFailureRollsBack(t *testing.T) {
	f, ctx := newFixture(t, nil)
	s := f.service

	_, err := s.Deposit(ctx, "alice", amount("500"))
	require.NoError(t, err)

	f.market.err = core.ErrInsufficientLiquidity

	_, err = s.Deposit(ctx, "alice", amount("100"))
	assert.True(t, errors.Is(err, core.ErrInsufficientLiquidity))

	_, err = s.Withdraw(ctx, "alice", amount("100"))
	assert.True(t, errors.Is(err, core.ErrInsufficientLiquidity))

	_, err = s.Donate(ctx, "bob", amount("100"))
	assert.Error(t, err)

	f.market.err = nil

	balance, err := s.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "500", balance.String())

	pool, err := s.Pool(ctx)
	require.NoError(t, err)
	assert.Equal(t, "500", pool.TotalPrincipal.String())
	assert.Equal(t, "500", pool.Position.String())
	assert.True(t, pool.Donations.IsZero())

	assert.Empty(t, f.pending(t, ctx))
}

func TestReentrantCallRejected(t *testing.T) {
	f, ctx := newFixture(t, nil)
	s := f.service

	var (
		reentrant error
		committed decimal.Decimal
	)

	f.market.hook = func(ctx context.Context) {
		f.market.hook = nil

		_, reentrant = s.Withdraw(ctx, "alice", amount("100"))

		// the ledger mutation is committed before the market is called
		d, err := f.deposits.Find(ctx, f.pool.ID, "alice")
		require.NoError(t, err)
		committed = d.Principal
	}

	_, err := s.Deposit(ctx, "alice", amount("100"))
	require.NoError(t, err)

	assert.True(t, errors.Is(reentrant, core.ErrReentrant))
	assert.Equal(t, "100", committed.String())

	balance, err := s.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "100", balance.String())
}

func TestMarketShortfallIsFatal(t *testing.T) {
	f, ctx := newFixture(t, nil)
	s := f.service

	_, err := s.Deposit(ctx, "alice", amount("1000"))
	require.NoError(t, err)

	f.market.rate = amount("0.9")

	_, err = s.Excess(ctx)
	assert.True(t, errors.Is(err, core.ErrMarketShortfall))
	assert.True(t, vault.IsFatal(err))

	_, err = s.Deposit(ctx, "bob", amount("10"))
	assert.True(t, vault.IsFatal(err))

	balance, err := s.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestOpenVerifiesBeneficiary(t *testing.T) {
	f, ctx := newFixture(t, nil)

	other := New(f.service.db, core.PoolConfig{
		Beneficiary:     "someone else",
		AssetID:         f.pool.AssetID,
		PositionAssetID: f.pool.PositionAssetID,
	}, f.service.pools, f.deposits, f.journal, f.transfers, f.market)

	_, err := other.Open(ctx)
	assert.True(t, errors.Is(err, core.ErrPoolMismatch))

	same := New(f.service.db, f.service.config, f.service.pools, f.deposits, f.journal, f.transfers, f.market)
	pool, err := same.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.pool.ID, pool.ID)
}

func TestPoolNotOpened(t *testing.T) {
	f, ctx := newFixture(t, nil)

	s := New(f.service.db, core.PoolConfig{
		Beneficiary:     "beneficiary",
		AssetID:         f.pool.AssetID,
		PositionAssetID: uuid.Must(uuid.NewV4()).String(),
	}, f.service.pools, f.deposits, f.journal, f.transfers, f.market)

	_, err := s.Deposit(ctx, "alice", amount("1"))
	assert.True(t, errors.Is(err, core.ErrPoolNotFound))
}

type failingTransfers struct {
	core.ITransferStore
}

func (failingTransfers) Create(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	return errors.New("outbox unavailable")
}

func TestSettleFailureCompensates(t *testing.T) {
	f, ctx := newFixture(t, nil)
	s := f.service

	_, err := s.Deposit(ctx, "alice", amount("100"))
	require.NoError(t, err)

	s.transfers = failingTransfers{f.transfers}
	_, err = s.Withdraw(ctx, "alice", amount("40"))
	require.Error(t, err)
	assert.False(t, vault.IsFatal(err))

	balance, err := s.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "100", balance.String())
	assert.Equal(t, "100", f.market.shares.String())

	pool, err := s.Pool(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", pool.Position.String())
	assert.Equal(t, "100", pool.TotalPrincipal.String())

	entries, err := f.journal.ListByUser(ctx, pool.ID, "alice", time.Time{}, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Empty(t, f.pending(t, ctx))
}

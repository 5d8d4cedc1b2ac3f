package pool

import (
	"context"
	"sync"

	"yieldpool/core"
	"yieldpool/pkg/vault"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Service the pool facade
//
// Every public method holds the pool mutex until it returns. The context
// handed to the market adapter is marked, a call made with a marked context
// fails with core.ErrReentrant instead of waiting on the mutex.
type Service struct {
	db     *db.DB
	config core.PoolConfig

	pools        core.IPoolStore
	deposits     core.IDepositStore
	transactions core.TransactionStore
	transfers    core.ITransferStore
	adapter      core.IMarketAdapter

	mutex sync.Mutex
}

var _ core.IPoolService = (*Service)(nil)

// New new pool service
func New(
	db *db.DB,
	config core.PoolConfig,
	pools core.IPoolStore,
	deposits core.IDepositStore,
	transactions core.TransactionStore,
	transfers core.ITransferStore,
	adapter core.IMarketAdapter,
) *Service {
	return &Service{
		db:           db,
		config:       config,
		pools:        pools,
		deposits:     deposits,
		transactions: transactions,
		transfers:    transfers,
		adapter:      adapter,
	}
}

type reentryKey struct{}

// enter lock the pool, the returned context is the one passed to the adapter
func (s *Service) enter(ctx context.Context) (context.Context, func(), error) {
	if ctx.Value(reentryKey{}) != nil {
		return ctx, nil, vault.Require(false, core.ErrReentrant, "pool/reentrant-call", vault.FlagNoisy)
	}

	s.mutex.Lock()
	return context.WithValue(ctx, reentryKey{}, true), s.mutex.Unlock, nil
}

// Open create the pool on first run, verify it against the config afterwards
//
// The beneficiary is fixed when the pool is created.
func (s *Service) Open(ctx context.Context) (*core.Pool, error) {
	ctx, release, err := s.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := requireUser(s.config.Beneficiary); err != nil {
		return nil, err
	}

	if s.config.AssetID == "" || s.config.PositionAssetID == "" {
		return nil, vault.Require(false, core.ErrPoolMismatch, "pool/open/missing-asset")
	}

	pool := &core.Pool{
		AssetID:         s.config.AssetID,
		PositionAssetID: s.config.PositionAssetID,
		Beneficiary:     s.config.Beneficiary,
	}
	if err := s.pools.Create(ctx, s.db, pool); err != nil {
		return nil, err
	}

	if pool.AssetID != s.config.AssetID {
		return nil, vault.Require(false, core.ErrPoolMismatch, "pool/open/asset-mismatch")
	}

	if pool.Beneficiary != s.config.Beneficiary {
		return nil, vault.Require(false, core.ErrPoolMismatch, "pool/open/beneficiary-mismatch")
	}

	logger.FromContext(ctx).WithField("pool", pool.ID).Infoln("pool opened")
	return pool, nil
}

func (s *Service) load(ctx context.Context) (*core.Pool, error) {
	pool, err := s.pools.Find(ctx, s.config.PositionAssetID)
	if err != nil {
		return nil, err
	}

	if pool.ID == 0 {
		return nil, core.ErrPoolNotFound
	}

	return pool, nil
}

// excess fresh excess of pool, never cached
func (s *Service) excess(ctx context.Context, pool *core.Pool) (decimal.Decimal, error) {
	value, err := s.adapter.CurrentValue(ctx, pool.Position)
	if err != nil {
		return decimal.Zero, err
	}

	return vault.Excess(value, pool.TotalPrincipal)
}

// Pool the persisted pool
func (s *Service) Pool(ctx context.Context) (*core.Pool, error) {
	ctx, release, err := s.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.load(ctx)
}

// BalanceOf principal of depositor, zero if unknown
func (s *Service) BalanceOf(ctx context.Context, depositor string) (decimal.Decimal, error) {
	ctx, release, err := s.enter(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer release()

	pool, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	deposit, err := s.deposits.Find(ctx, pool.ID, depositor)
	if err != nil {
		return decimal.Zero, err
	}

	return vault.BalanceOf(deposit), nil
}

// Excess current market value of the position minus total principal
func (s *Service) Excess(ctx context.Context) (decimal.Decimal, error) {
	ctx, release, err := s.enter(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer release()

	pool, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	excess, err := s.excess(ctx, pool)
	if vault.IsFatal(err) {
		logger.FromContext(ctx).WithError(err).Errorln("market shortfall")
	}

	return excess, err
}

// Audit check total principal against the deposits and the position value against total principal
func (s *Service) Audit(ctx context.Context) (*core.Pool, error) {
	ctx, release, err := s.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	pool, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	deposits, err := s.deposits.FindByPool(ctx, pool.ID)
	if err != nil {
		return nil, err
	}

	value, err := s.adapter.CurrentValue(ctx, pool.Position)
	if err != nil {
		return nil, err
	}

	return pool, vault.CheckInvariants(pool, deposits, value)
}

func requireUser(userID string) error {
	return vault.Require(userID != "" && len(userID) <= 36, core.ErrInvalidUser, "pool/invalid-user", vault.FlagNoisy)
}

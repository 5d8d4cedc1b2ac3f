package market

import (
	"context"
	"errors"
	"sync"
	"time"

	"yieldpool/core"
	"yieldpool/internal/compound"
	"yieldpool/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ErrMarketNotInitialized the market row has not been created yet
var ErrMarketNotInitialized = errors.New("market not initialized")

type service struct {
	db          *db.DB
	config      *core.Config
	marketStore core.IMarketStore
	blockSrv    core.IBlockService

	mutex sync.Mutex
}

// New new simulated market service
func New(
	db *db.DB,
	config *core.Config,
	marketStr core.IMarketStore,
	blockSrv core.IBlockService,
) core.IMarketService {
	return &service{
		db:          db,
		config:      config,
		marketStore: marketStr,
		blockSrv:    blockSrv,
	}
}

// Init seeds the market with the configured liquidity.
//
// The seeded ctokens are minted at the initial exchange rate so the
// market's own liquidity never shows up as value of the pool position.
func (s *service) Init(ctx context.Context) (*core.Market, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cfg := s.config.Market
	initExchangeRate := number.Decimal(cfg.InitExchangeRate)
	if !initExchangeRate.IsPositive() {
		return nil, errors.New("init exchange rate should be positive")
	}

	cash, borrows := number.Decimal(cfg.Cash), number.Decimal(cfg.Borrows)
	if cash.IsNegative() || borrows.IsNegative() || !number.IsInteger(cash) || !number.IsInteger(borrows) {
		return nil, errors.New("market liquidity should be whole smallest units")
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	market := &core.Market{
		AssetID:          s.config.Pool.AssetID,
		CTokenAssetID:    s.config.Pool.PositionAssetID,
		TotalCash:        cash,
		TotalBorrows:     borrows,
		CTokens:          compound.MintTokens(cash.Add(borrows), initExchangeRate),
		InitExchangeRate: initExchangeRate,
		ReserveFactor:    number.Decimal(cfg.ReserveFactor),
		BaseRate:         number.Decimal(cfg.BaseRate),
		Multiplier:       number.Decimal(cfg.Multiplier),
		JumpMultiplier:   number.Decimal(cfg.JumpMultiplier),
		Kink:             number.Decimal(cfg.Kink),
		BlockNumber:      block,
		BorrowIndex:      decimal.New(1, 0),
	}
	compound.AccrueInterest(market, block)

	if err := s.marketStore.Save(ctx, market); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("ctoken", market.CTokenAssetID).
		Infof("market ready, cash %s borrows %s ctokens %s", market.TotalCash, market.TotalBorrows, market.CTokens)
	return market, nil
}

func (s *service) load(ctx context.Context) (*core.Market, error) {
	market, err := s.marketStore.Find(ctx, s.config.Pool.PositionAssetID)
	if err != nil {
		return nil, err
	}

	if market.ID == 0 {
		return nil, ErrMarketNotInitialized
	}

	return market, nil
}

// accrued the market accrued to the current block, not persisted
func (s *service) accrued(ctx context.Context) (*core.Market, error) {
	market, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	block, err := s.blockSrv.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	compound.AccrueInterest(market, block)
	return market, nil
}

func (s *service) Market(ctx context.Context) (*core.Market, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.accrued(ctx)
}

func (s *service) AccrueInterest(ctx context.Context, t time.Time) (*core.Market, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	market, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	block, err := s.blockSrv.GetBlock(ctx, t)
	if err != nil {
		return nil, err
	}

	if block <= market.BlockNumber {
		return market, nil
	}

	compound.AccrueInterest(market, block)
	if err := s.marketStore.Update(ctx, s.db, market); err != nil {
		return nil, err
	}

	return market, nil
}

func (s *service) Mint(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !number.IsAmount(amount) {
		return decimal.Zero, core.ErrInvalidAmount
	}

	market, err := s.accrued(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	ctokens, err := compound.Mint(market, amount)
	if err != nil {
		if errors.Is(err, compound.ErrMintTooSmall) {
			return decimal.Zero, core.ErrInvalidAmount
		}

		return decimal.Zero, err
	}

	if err := s.marketStore.Update(ctx, s.db, market); err != nil {
		return decimal.Zero, err
	}

	return ctokens, nil
}

func (s *service) Redeem(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !number.IsAmount(value) {
		return decimal.Zero, core.ErrInvalidAmount
	}

	market, err := s.accrued(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	ctokens, err := compound.Redeem(market, value)
	if err != nil {
		if errors.Is(err, compound.ErrRedeemNotAllowed) {
			return decimal.Zero, core.ErrInsufficientLiquidity
		}

		return decimal.Zero, err
	}

	if err := s.marketStore.Update(ctx, s.db, market); err != nil {
		return decimal.Zero, err
	}

	return ctokens, nil
}

func (s *service) CurrentValue(ctx context.Context, shares decimal.Decimal) (decimal.Decimal, error) {
	if shares.IsZero() {
		return decimal.Zero, nil
	}

	market, err := s.Market(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return compound.ValueOf(market, shares), nil
}

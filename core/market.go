package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Market simulated lending market the pool forwards funds into
//
// Amounts are integers in the smallest unit of the underlying asset,
// CTokens are integers in the smallest unit of the position asset.
type Market struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID       string          `sql:"size:36;unique_index:market_asset_idx" json:"asset_id"`
	CTokenAssetID string          `gorm:"column:ctoken_asset_id" sql:"size:36;unique_index:market_ctoken_asset_idx" json:"ctoken_asset_id"`
	TotalCash     decimal.Decimal `sql:"type:varchar(80)" json:"total_cash"`
	TotalBorrows  decimal.Decimal `sql:"type:varchar(80)" json:"total_borrows"`
	// 保留金
	Reserves decimal.Decimal `sql:"type:varchar(80)" json:"reserves"`
	// CToken 累计铸造出来的币的数量
	CTokens decimal.Decimal `gorm:"column:ctokens" sql:"type:varchar(80)" json:"ctokens"`
	// 初始兑换率
	InitExchangeRate decimal.Decimal `sql:"type:decimal(28,18);default:0" json:"init_exchange_rate"`
	// 平台保留金率 (0, 1), 默认为 0.10
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`
	//基础利率 per year, 0.025
	BaseRate decimal.Decimal `sql:"type:decimal(20,8)" json:"base_rate"`
	// The multiplier of utilization rate that gives the slope of the interest rate. per year
	Multiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"multiplier"`
	// The multiplierPerBlock after hitting a specified utilization point. per year
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"jump_multiplier"`
	// Kink
	Kink decimal.Decimal `sql:"type:decimal(20,8)" json:"kink"`
	//当前区块高度
	BlockNumber        int64           `json:"block_number"`
	UtilizationRate    decimal.Decimal `sql:"type:decimal(28,18)" json:"utilization_rate"`
	ExchangeRate       decimal.Decimal `sql:"type:decimal(28,18)" json:"exchange_rate"`
	SupplyRatePerBlock decimal.Decimal `sql:"type:decimal(28,18)" json:"supply_rate_per_block"`
	BorrowRatePerBlock decimal.Decimal `sql:"type:decimal(28,18)" json:"borrow_rate_per_block"`
	BorrowIndex        decimal.Decimal `sql:"type:decimal(28,18)" json:"borrow_index"`
	Version            int64           `sql:"default:0" json:"version"`
	CreatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IMarketStore market store interface
type IMarketStore interface {
	Save(ctx context.Context, market *Market) error
	Find(ctx context.Context, ctokenAssetID string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketAdapter the external interest-bearing position the pool holds
//
// Conversions round in the holder's favour: minted shares are worth at
// least the amount, a redemption never takes more than the value redeemed.
type IMarketAdapter interface {
	// Mint moves amount of underlying into the market, returns the shares minted
	Mint(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
	// Redeem takes value of underlying out of the market, returns the shares burned
	Redeem(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error)
	// CurrentValue underlying equivalent of shares at the current block
	CurrentValue(ctx context.Context, shares decimal.Decimal) (decimal.Decimal, error)
}

// IMarketService simulated market service interface
type IMarketService interface {
	IMarketAdapter
	// Init create the market from config if absent
	Init(ctx context.Context) (*Market, error)
	Market(ctx context.Context) (*Market, error)
	AccrueInterest(ctx context.Context, t time.Time) (*Market, error)
}

package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Pool the yield pool aggregate
//
// TotalPrincipal always equals the sum of every Deposit.Principal of the pool.
// Position is the pool's stake in the lending market, counted in market shares.
type Pool struct {
	ID              uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID         string          `sql:"size:36" json:"asset_id"`
	PositionAssetID string          `sql:"size:36;unique_index:pool_position_idx" json:"position_asset_id"`
	Beneficiary     string          `sql:"size:36" json:"beneficiary"`
	TotalPrincipal  decimal.Decimal `sql:"type:varchar(80)" json:"total_principal"`
	Position        decimal.Decimal `sql:"type:varchar(80)" json:"position"`
	// 累计捐赠
	Donations decimal.Decimal `sql:"type:varchar(80)" json:"donations"`
	// 累计已提取收益
	InterestWithdrawn decimal.Decimal `sql:"type:varchar(80)" json:"interest_withdrawn"`
	Version           int64           `sql:"default:0" json:"version"`
	CreatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPoolStore pool store interface
type IPoolStore interface {
	Create(ctx context.Context, tx *db.DB, pool *Pool) error
	Find(ctx context.Context, positionAssetID string) (*Pool, error)
	FindTx(ctx context.Context, tx *db.DB, positionAssetID string) (*Pool, error)
	All(ctx context.Context) ([]*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
}

// IPoolService the pool facade
//
// Every mutating operation is atomic: on any error no state of the operation is kept.
type IPoolService interface {
	Deposit(ctx context.Context, depositor string, amount decimal.Decimal) (*Transaction, error)
	Withdraw(ctx context.Context, depositor string, amount decimal.Decimal) (*Transaction, error)
	Donate(ctx context.Context, donor string, amount decimal.Decimal) (*Transaction, error)
	WithdrawInterest(ctx context.Context, caller, recipient string, amount decimal.Decimal) (*Transaction, error)
	BalanceOf(ctx context.Context, depositor string) (decimal.Decimal, error)
	Excess(ctx context.Context) (decimal.Decimal, error)
	Pool(ctx context.Context) (*Pool, error)
	// Audit verify the pool against its deposits and the current market value
	Audit(ctx context.Context) (*Pool, error)
}

package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Deposit principal of one depositor in one pool
type Deposit struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	PoolID    uint64          `sql:"unique_index:deposit_pool_user_idx" json:"pool_id"`
	UserID    string          `sql:"size:36;unique_index:deposit_pool_user_idx" json:"user_id"`
	Principal decimal.Decimal `sql:"type:varchar(80)" json:"principal"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IDepositStore deposit store interface
type IDepositStore interface {
	// Find returns a zero Deposit (ID == 0) when the user never deposited
	Find(ctx context.Context, poolID uint64, userID string) (*Deposit, error)
	FindTx(ctx context.Context, tx *db.DB, poolID uint64, userID string) (*Deposit, error)
	Save(ctx context.Context, tx *db.DB, deposit *Deposit) error
	FindByPool(ctx context.Context, poolID uint64) ([]*Deposit, error)
	SumOfPrincipal(ctx context.Context, poolID uint64) (decimal.Decimal, error)
	CountOfDepositors(ctx context.Context, poolID uint64) (int64, error)
}

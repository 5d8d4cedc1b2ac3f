package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	// TransactionKeyShares shares minted or burned :decimal
	TransactionKeyShares = "shares"
	// TransactionKeyExcessBefore excess before the operation :decimal
	TransactionKeyExcessBefore = "excess_before"
	// TransactionKeyExcessAfter excess after the operation :decimal
	TransactionKeyExcessAfter = "excess_after"
	// TransactionKeyRecipient recipient of a payout :string
	TransactionKeyRecipient = "recipient"
	// TransactionKeyPrincipal depositor principal after the operation :decimal
	TransactionKeyPrincipal = "principal"
	// TransactionKeyTotalPrincipal pool total principal after the operation :decimal
	TransactionKeyTotalPrincipal = "total_principal"
)

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	d := make(TransactionExtraData)
	return d
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Transaction journal entry of a committed pool operation
type Transaction struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	PoolID    uint64          `sql:"index:idx_transactions_pool_id" json:"pool_id,omitempty"`
	Action    ActionType      `json:"action,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	UserID    string          `sql:"size:36;index:idx_transactions_user_id" json:"user_id,omitempty"`
	AssetID   string          `sql:"size:36" json:"asset_id,omitempty"`
	Amount    decimal.Decimal `sql:"type:varchar(80)" json:"amount,omitempty"`
	Data      types.JSONText  `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
}

// SetExtraData set extra data
func (t *Transaction) SetExtraData(extra TransactionExtraData) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// TransactionStore transaction store interface
type TransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, poolID uint64, offset time.Time, limit int) ([]*Transaction, error)
	ListByUser(ctx context.Context, poolID uint64, userID string, offset time.Time, limit int) ([]*Transaction, error)
}

// BuildTransaction new journal entry
func BuildTransaction(pool *Pool, action ActionType, traceID, userID string, amount decimal.Decimal, extra TransactionExtraData) *Transaction {
	t := &Transaction{
		PoolID:  pool.ID,
		Action:  action,
		TraceID: traceID,
		UserID:  userID,
		AssetID: pool.AssetID,
		Amount:  amount,
	}
	t.SetExtraData(extra)
	return t
}

package views

import (
	"yieldpool/core"

	"github.com/shopspring/decimal"
)

// Pool pool view
type Pool struct {
	core.Pool
	Excess     decimal.Decimal `json:"excess"`
	Depositors int64           `json:"depositors"`
}

// Market market view
type Market struct {
	core.Market
	SupplyAPY decimal.Decimal `json:"supply_apy"`
	BorrowAPY decimal.Decimal `json:"borrow_apy"`
}

// Balance balance view
type Balance struct {
	UserID    string          `json:"user_id"`
	Principal decimal.Decimal `json:"principal"`
}

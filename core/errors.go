package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrReentrant pool operation entered from inside a market call
	ErrReentrant ErrorCode = 100002

	// ErrPoolNotFound no pool
	ErrPoolNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInsufficientBalance withdraw more than the depositor's principal
	ErrInsufficientBalance ErrorCode = 100102
	// ErrUnauthorized caller is not the beneficiary
	ErrUnauthorized ErrorCode = 100103
	// ErrExceedsExcess interest withdrawal larger than the current excess
	ErrExceedsExcess ErrorCode = 100104
	// ErrInsufficientLiquidity insufficient liquidity
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrPoolMismatch persisted pool differs from the configured one
	ErrPoolMismatch ErrorCode = 100106
	// ErrInvalidUser empty or malformed identity
	ErrInvalidUser ErrorCode = 100107

	// ErrMarketShortfall market value fell below total principal
	ErrMarketShortfall ErrorCode = 100200
	// ErrAmountOverflow amount exceeds the representable bound
	ErrAmountOverflow ErrorCode = 100201
	// ErrInvariantViolation ledger and position disagree
	ErrInvariantViolation ErrorCode = 100202
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100002
	// ErrOperationConflict concurrent update lost the version race
	ErrOperationConflict ErrorCode = 100003

	// ErrPoolNotFound no pool for asset
	ErrPoolNotFound ErrorCode = 100100
	// ErrInsufficientLiquidity pool cannot fund the borrow
	ErrInsufficientLiquidity ErrorCode = 100101

	// ErrAccountNotFound no active credit account for owner
	ErrAccountNotFound ErrorCode = 100200
	// ErrAccountAlreadyOpen owner already has an active credit account
	ErrAccountAlreadyOpen ErrorCode = 100201
	// ErrExcessiveLeverage leverage factor out of the pool bound
	ErrExcessiveLeverage ErrorCode = 100202
	// ErrInsufficientCollateral health factor below 1 after the operation
	ErrInsufficientCollateral ErrorCode = 100203
	// ErrInsufficientRepayment caller cannot cover principal plus interest
	ErrInsufficientRepayment ErrorCode = 100204
	// ErrAccountNotLiquidatable health factor is not below 1
	ErrAccountNotLiquidatable ErrorCode = 100205

	// ErrUnauthorizedTarget target contract has no registered adapter
	ErrUnauthorizedTarget ErrorCode = 100300
	// ErrTokenNotAllowed token is not on the credit filter allow list
	ErrTokenNotAllowed ErrorCode = 100301
	// ErrUnpricedAsset no price for a token the account holds
	ErrUnpricedAsset ErrorCode = 100302

	// ErrSlippageExceeded realized swap amount violates the caller bound
	ErrSlippageExceeded ErrorCode = 100400
	// ErrDeadlineExpired swap deadline elapsed before execution
	ErrDeadlineExpired ErrorCode = 100401
	// ErrPairNotFound no pair for the swap path hop
	ErrPairNotFound ErrorCode = 100402
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

package core

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrInvalidConfiguration asset and feed lists do not pair up, or a policy value is out of range
	ErrInvalidConfiguration ErrorCode = 100001
	// ErrReentrantCall a mutating call started while another one is in flight on the same call chain
	ErrReentrantCall ErrorCode = 100002
	// ErrArithmeticOverflow fixed point overflow or underflow
	ErrArithmeticOverflow ErrorCode = 100003

	// ErrZeroAmount amount must be positive
	ErrZeroAmount ErrorCode = 100100
	// ErrAssetNotAllowed asset not in registry
	ErrAssetNotAllowed ErrorCode = 100101
	// ErrTransferFailed custody or debt token signaled failure
	ErrTransferFailed ErrorCode = 100102
	// ErrHealthFactorBroken post operation health factor below minimum
	ErrHealthFactorBroken ErrorCode = 100103
	// ErrMintFailed debt token mint signaled failure
	ErrMintFailed ErrorCode = 100104
	// ErrPositionHealthy liquidation target is solvent
	ErrPositionHealthy ErrorCode = 100105
	// ErrLiquidationNotEffective liquidation did not improve the target health factor
	ErrLiquidationNotEffective ErrorCode = 100106
	// ErrInsufficientCollateral not enough collateral to redeem or seize
	ErrInsufficientCollateral ErrorCode = 100107
	// ErrInsufficientDebt burn exceeds minted debt
	ErrInsufficientDebt ErrorCode = 100108
	// ErrStalePrice price round stale or invalid
	ErrStalePrice ErrorCode = 100109
	// ErrInsufficientBalance balance book owner holds less than the amount moved
	ErrInsufficientBalance ErrorCode = 100110

	// ErrLockNotElapsed time lock not elapsed
	ErrLockNotElapsed ErrorCode = 100200
	// ErrInsufficientPoolLiquidity borrow exceeds pooled savings margin
	ErrInsufficientPoolLiquidity ErrorCode = 100201
	// ErrDivisionByZeroUtilization utilization requested with nothing saved
	ErrDivisionByZeroUtilization ErrorCode = 100202
	// ErrBorrowPositionOpen account already has an open borrow
	ErrBorrowPositionOpen ErrorCode = 100203
	// ErrNoBorrowPosition account has no open borrow
	ErrNoBorrowPosition ErrorCode = 100204
	// ErrInvalidLockDuration lock duration not positive or not a preset
	ErrInvalidLockDuration ErrorCode = 100205
	// ErrInsufficientSavings withdrawal exceeds deposit
	ErrInsufficientSavings ErrorCode = 100206
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                   "unknown",
	ErrInvalidConfiguration:      "invalid configuration",
	ErrReentrantCall:             "reentrant call",
	ErrArithmeticOverflow:        "arithmetic overflow",
	ErrZeroAmount:                "amount must be greater than zero",
	ErrAssetNotAllowed:           "asset not allowed",
	ErrTransferFailed:            "transfer failed",
	ErrHealthFactorBroken:        "health factor broken",
	ErrMintFailed:                "mint failed",
	ErrPositionHealthy:           "health factor ok",
	ErrLiquidationNotEffective:   "health factor not improved",
	ErrInsufficientCollateral:    "insufficient collateral",
	ErrInsufficientDebt:          "insufficient debt",
	ErrStalePrice:                "stale price",
	ErrInsufficientBalance:       "insufficient balance",
	ErrLockNotElapsed:            "lock not elapsed",
	ErrInsufficientPoolLiquidity: "insufficient pool liquidity",
	ErrDivisionByZeroUtilization: "utilization undefined with zero savings",
	ErrBorrowPositionOpen:        "borrow position already open",
	ErrNoBorrowPosition:          "no borrow position",
	ErrInvalidLockDuration:       "invalid lock duration",
	ErrInsufficientSavings:       "insufficient savings",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// HealthFactorError is returned when an operation would leave an account
// below the minimum health factor. It matches ErrHealthFactorBroken.
type HealthFactorError struct {
	Account      string
	HealthFactor *uint256.Int
}

func (e *HealthFactorError) Error() string {
	return fmt.Sprintf("%s: account %s health factor %s", ErrHealthFactorBroken.Error(), e.Account, e.HealthFactor.Dec())
}

// Unwrap exposes the error code
func (e *HealthFactorError) Unwrap() error {
	return ErrHealthFactorBroken
}

// Code extract the error code from err, ErrUnknown if none
func Code(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}

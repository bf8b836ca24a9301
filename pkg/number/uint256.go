package number

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	// ErrOverflow result does not fit in 256 bits
	ErrOverflow = errors.New("number: overflow")
	// ErrUnderflow subtraction below zero
	ErrUnderflow = errors.New("number: underflow")
	// ErrDivisionByZero division by zero
	ErrDivisionByZero = errors.New("number: division by zero")
	// ErrNegative negative value can not be represented
	ErrNegative = errors.New("number: negative value")
)

// Zero new zero value
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Pow10 10^n
func Pow10(n uint64) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(n))
}

// Max largest representable value
func Max() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// Clone copy x, nil becomes zero
func Clone(x *uint256.Int) *uint256.Int {
	if x == nil {
		return Zero()
	}

	return new(uint256.Int).Set(x)
}

// IsZero nil safe zero check
func IsZero(x *uint256.Int) bool {
	return x == nil || x.IsZero()
}

// Add x + y
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(Clone(x), Clone(y))
	if overflow {
		return nil, ErrOverflow
	}

	return z, nil
}

// Sub x - y
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(Clone(x), Clone(y))
	if underflow {
		return nil, ErrUnderflow
	}

	return z, nil
}

// Mul x * y
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(Clone(x), Clone(y))
	if overflow {
		return nil, ErrOverflow
	}

	return z, nil
}

// MulDiv x * y / d, truncated, with a 512 bit intermediate
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if IsZero(d) {
		return nil, ErrDivisionByZero
	}

	z, overflow := new(uint256.Int).MulDivOverflow(Clone(x), Clone(y), d)
	if overflow {
		return nil, ErrOverflow
	}

	return z, nil
}

// Min smaller of x and y
func Min(x, y *uint256.Int) *uint256.Int {
	if Clone(x).Lt(Clone(y)) {
		return Clone(x)
	}

	return Clone(y)
}

// FromDecimal scale d by 10^decimals and truncate into an integer
func FromDecimal(d decimal.Decimal, decimals int32) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegative
	}

	v, overflow := uint256.FromBig(d.Shift(decimals).Truncate(0).BigInt())
	if overflow {
		return nil, ErrOverflow
	}

	return v, nil
}

// ToDecimal unscale x by 10^decimals
func ToDecimal(x *uint256.Int, decimals int32) decimal.Decimal {
	if x == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(x.ToBig(), -decimals)
}

// Parse parse a base unit integer string such as "1000000000000000000"
func Parse(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}

	if !d.Equal(d.Truncate(0)) {
		return nil, errors.New("number: fractional base units")
	}

	return FromDecimal(d, 0)
}

// Ether parse a human amount such as "1.5" into 18 decimal base units, panics on bad input
func Ether(s string) *uint256.Int {
	v, err := FromDecimal(Decimal(s), 18)
	if err != nil {
		panic(err)
	}

	return v
}

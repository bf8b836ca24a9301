package core

import (
	"time"

	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// BorrowPosition collateralized borrow of the savings asset
type BorrowPosition struct {
	Address           string                  `sql:"size:64;PRIMARY_KEY" json:"address"`
	AmountBorrowed    *uint256.Int            `sql:"type:numeric(78,0)" json:"amount_borrowed"`
	CollateralByAsset map[string]*uint256.Int `sql:"-" json:"collateral_by_asset"`
	OpenedAt          time.Time               `json:"opened_at"`
	LockExpiry        time.Time               `json:"lock_expiry"`
	// LockPeriod seconds, also the length of one decay period
	LockPeriod       int64        `json:"lock_period"`
	FeeAtOrigination *uint256.Int `sql:"type:numeric(78,0)" json:"fee_at_origination"`
	Version          int64        `sql:"default:0" json:"version"`
	CreatedAt        time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewBorrowPosition zero valued position
func NewBorrowPosition(address string) *BorrowPosition {
	return &BorrowPosition{
		Address:           address,
		AmountBorrowed:    number.Zero(),
		CollateralByAsset: map[string]*uint256.Int{},
		FeeAtOrigination:  number.Zero(),
	}
}

// Open has outstanding borrow
func (b *BorrowPosition) Open() bool {
	return !number.IsZero(b.AmountBorrowed)
}

// CollateralOf collateral balance of asset, zero if absent
func (b *BorrowPosition) CollateralOf(asset string) *uint256.Int {
	return number.Clone(b.CollateralByAsset[asset])
}

// Reset zero the position
func (b *BorrowPosition) Reset() {
	b.AmountBorrowed = number.Zero()
	b.CollateralByAsset = map[string]*uint256.Int{}
	b.FeeAtOrigination = number.Zero()
	b.LockPeriod = 0
	b.OpenedAt = time.Time{}
	b.LockExpiry = time.Time{}
}

// Clone deep copy
func (b *BorrowPosition) Clone() *BorrowPosition {
	c := *b
	c.AmountBorrowed = number.Clone(b.AmountBorrowed)
	c.FeeAtOrigination = number.Clone(b.FeeAtOrigination)
	c.CollateralByAsset = cloneBalances(b.CollateralByAsset)
	return &c
}

package core

import (
	"context"
	"time"

	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// SavingsPosition time locked deposit of the savings asset
type SavingsPosition struct {
	Address         string       `sql:"size:64;PRIMARY_KEY" json:"address"`
	AmountDeposited *uint256.Int `sql:"type:numeric(78,0)" json:"amount_deposited"`
	LockExpiry      time.Time    `json:"lock_expiry"`
	RateAtDeposit   uint64       `json:"rate_at_deposit"`
	Version         int64        `sql:"default:0" json:"version"`
	CreatedAt       time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewSavingsPosition zero valued position
func NewSavingsPosition(address string) *SavingsPosition {
	return &SavingsPosition{
		Address:         address,
		AmountDeposited: number.Zero(),
	}
}

// Clone deep copy
func (p *SavingsPosition) Clone() *SavingsPosition {
	c := *p
	c.AmountDeposited = number.Clone(p.AmountDeposited)
	return &c
}

// Pools global savings and borrowing totals, a single row
type Pools struct {
	ID            int64                   `sql:"PRIMARY_KEY" json:"-"`
	TotalSaved    *uint256.Int            `sql:"type:numeric(78,0)" json:"total_saved"`
	TotalBorrowed *uint256.Int            `sql:"type:numeric(78,0)" json:"total_borrowed"`
	FeesCollected *uint256.Int            `sql:"type:numeric(78,0)" json:"fees_collected"`
	YieldMinted   *uint256.Int            `sql:"type:numeric(78,0)" json:"yield_minted"`
	Penalties     map[string]*uint256.Int `sql:"-" json:"penalties"`
	Version       int64                   `sql:"default:0" json:"version"`
	UpdatedAt     time.Time               `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PoolsID id of the pools row
const PoolsID = 1

// NewPools zero valued pools
func NewPools() *Pools {
	return &Pools{
		ID:            PoolsID,
		TotalSaved:    number.Zero(),
		TotalBorrowed: number.Zero(),
		FeesCollected: number.Zero(),
		YieldMinted:   number.Zero(),
		Penalties:     map[string]*uint256.Int{},
	}
}

// Clone deep copy
func (p *Pools) Clone() *Pools {
	c := *p
	c.TotalSaved = number.Clone(p.TotalSaved)
	c.TotalBorrowed = number.Clone(p.TotalBorrowed)
	c.FeesCollected = number.Clone(p.FeesCollected)
	c.YieldMinted = number.Clone(p.YieldMinted)
	c.Penalties = cloneBalances(p.Penalties)
	return &c
}

// PoolStatus pools with the current utilization and rate
type PoolStatus struct {
	*Pools
	Utilization uint64 `json:"utilization"`
	Rate        uint64 `json:"rate"`
}

// ISavingsService savings and collateralized borrowing of the savings asset
type ISavingsService interface {
	Deposit(ctx context.Context, account string, amount *uint256.Int, lock time.Duration) error
	Withdraw(ctx context.Context, account string, amount *uint256.Int) (*uint256.Int, error)
	Borrow(ctx context.Context, account, collateralAsset string, collateral, amount *uint256.Int, lock time.Duration) (*uint256.Int, error)
	AddCollateral(ctx context.Context, account, asset string, amount *uint256.Int) error
	Settle(ctx context.Context, account string) (map[string]*uint256.Int, error)
	LiquidateBorrow(ctx context.Context, liquidator, target, collateralAsset string) error

	SavingsPosition(ctx context.Context, account string) (*SavingsPosition, error)
	BorrowPosition(ctx context.Context, account string) (*BorrowPosition, error)
	BorrowHealthFactor(ctx context.Context, account string) (*uint256.Int, error)
	Status(ctx context.Context) (*PoolStatus, error)
}

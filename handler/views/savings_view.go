package views

import (
	"time"

	"cdp/core"
)

// Savings savings position view
type Savings struct {
	Address       string    `json:"address"`
	Deposited     Balance   `json:"deposited"`
	LockExpiry    time.Time `json:"lock_expiry"`
	RateAtDeposit uint64    `json:"rate_at_deposit"`
}

// SavingsView convert position
func SavingsView(asset string, p *core.SavingsPosition) Savings {
	return Savings{
		Address:       p.Address,
		Deposited:     NewBalance(asset, p.AmountDeposited),
		LockExpiry:    p.LockExpiry,
		RateAtDeposit: p.RateAtDeposit,
	}
}

// Borrow borrow position view
type Borrow struct {
	Address          string    `json:"address"`
	Borrowed         Balance   `json:"borrowed"`
	Collateral       []Balance `json:"collateral"`
	OpenedAt         time.Time `json:"opened_at"`
	LockExpiry       time.Time `json:"lock_expiry"`
	LockPeriod       int64     `json:"lock_period"`
	FeeAtOrigination Balance   `json:"fee_at_origination"`
	HealthFactor     *Balance  `json:"health_factor,omitempty"`
}

// BorrowView convert position
func BorrowView(assets []string, asset string, p *core.BorrowPosition) Borrow {
	return Borrow{
		Address:          p.Address,
		Borrowed:         NewBalance(asset, p.AmountBorrowed),
		Collateral:       Balances(assets, p.CollateralByAsset),
		OpenedAt:         p.OpenedAt,
		LockExpiry:       p.LockExpiry,
		LockPeriod:       p.LockPeriod,
		FeeAtOrigination: NewBalance(asset, p.FeeAtOrigination),
	}
}

// Pools pools status view
type Pools struct {
	TotalSaved    Balance   `json:"total_saved"`
	TotalBorrowed Balance   `json:"total_borrowed"`
	FeesCollected Balance   `json:"fees_collected"`
	YieldMinted   Balance   `json:"yield_minted"`
	Penalties     []Balance `json:"penalties"`
	Utilization   uint64    `json:"utilization"`
	Rate          uint64    `json:"rate"`
}

// PoolsView convert status
func PoolsView(assets []string, asset string, s *core.PoolStatus) Pools {
	return Pools{
		TotalSaved:    NewBalance(asset, s.TotalSaved),
		TotalBorrowed: NewBalance(asset, s.TotalBorrowed),
		FeesCollected: NewBalance(asset, s.FeesCollected),
		YieldMinted:   NewBalance("", s.YieldMinted),
		Penalties:     Balances(assets, s.Penalties),
		Utilization:   s.Utilization,
		Rate:          s.Rate,
	}
}

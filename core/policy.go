package core

import (
	"time"

	"cdp/pkg/number"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// PrecisionDecimals internal fixed point decimals
	PrecisionDecimals = 18
	// LiquidationPrecision denominator of threshold and bonus percentages
	LiquidationPrecision = 100
	// RatePrecision denominator of interest rates, 1000 = 1%
	RatePrecision = 100000
	// UtilizationPrecision denominator of utilization, per-mille
	UtilizationPrecision = 1000
)

var (
	// Precision 1e18
	Precision = number.Pow10(PrecisionDecimals)
	// MinHealthFactor 1.0 in fixed point
	MinHealthFactor = number.Pow10(PrecisionDecimals)
)

// HumanAmount fixed point amount in whole units
func HumanAmount(x *uint256.Int) decimal.Decimal {
	return number.ToDecimal(x, PrecisionDecimals)
}

// Policy risk and savings parameters, fixed at construction
type Policy struct {
	// LiquidationThreshold percent of collateral value counted against debt
	LiquidationThreshold uint64 `json:"liquidation_threshold"`
	// LiquidationBonus percent of seized collateral paid on top to the liquidator
	LiquidationBonus uint64 `json:"liquidation_bonus"`
	// StalePriceTimeout seconds a feed round stays fresh
	StalePriceTimeout int64 `json:"stale_price_timeout"`

	// SavingsAsset the single yield bearing asset, must be in the registry
	SavingsAsset string `json:"savings_asset"`
	// OptimalUtilization kink of the rate curve, per-mille
	OptimalUtilization uint64 `json:"optimal_utilization"`
	// BaseRate rate at zero utilization, RatePrecision units
	BaseRate uint64 `json:"base_rate"`
	// SlopeLow rate added between zero and optimal utilization
	SlopeLow uint64 `json:"slope_low"`
	// SlopeHigh rate added between optimal and full utilization
	SlopeHigh uint64 `json:"slope_high"`
	// BorrowCap percent of total saved that total borrowed may reach
	BorrowCap uint64 `json:"borrow_cap"`
	// DecayMultiplier percent of collateral kept per overdue period
	DecayMultiplier uint64 `json:"decay_multiplier"`
	// DecayFloorPeriods overdue periods after which nothing is returned
	DecayFloorPeriods uint64 `json:"decay_floor_periods"`
	// LockPresets lock durations in seconds
	LockPresets []int64 `json:"lock_presets"`
	// StrictLockPresets reject durations that are not presets
	StrictLockPresets bool `json:"strict_lock_presets"`
}

// DefaultPolicy reference policy
func DefaultPolicy() Policy {
	return Policy{
		LiquidationThreshold: 50,
		LiquidationBonus:     10,
		StalePriceTimeout:    int64((3 * time.Hour).Seconds()),
		OptimalUtilization:   800,
		BaseRate:             6000,
		SlopeLow:             4000,
		SlopeHigh:            60000,
		BorrowCap:            90,
		DecayMultiplier:      87,
		DecayFloorPeriods:    10,
		LockPresets: []int64{
			int64((30 * 24 * time.Hour).Seconds()),
			int64((180 * 24 * time.Hour).Seconds()),
		},
	}
}

// Validate check ranges
func (p *Policy) Validate() error {
	if p.LiquidationThreshold == 0 || p.LiquidationThreshold > LiquidationPrecision {
		return ErrInvalidConfiguration
	}

	if p.LiquidationBonus >= LiquidationPrecision {
		return ErrInvalidConfiguration
	}

	if p.StalePriceTimeout <= 0 {
		return ErrInvalidConfiguration
	}

	if p.OptimalUtilization == 0 || p.OptimalUtilization >= UtilizationPrecision {
		return ErrInvalidConfiguration
	}

	if p.BorrowCap == 0 || p.BorrowCap > 100 {
		return ErrInvalidConfiguration
	}

	if p.DecayMultiplier == 0 || p.DecayMultiplier >= 100 || p.DecayFloorPeriods == 0 {
		return ErrInvalidConfiguration
	}

	for _, preset := range p.LockPresets {
		if preset <= 0 {
			return ErrInvalidConfiguration
		}
	}

	return nil
}

// StaleTimeout stale price timeout as duration
func (p *Policy) StaleTimeout() time.Duration {
	return time.Duration(p.StalePriceTimeout) * time.Second
}

// LockAllowed check the lock duration against policy
func (p *Policy) LockAllowed(lock time.Duration) bool {
	// lock periods are stored in whole seconds
	if lock < time.Second || lock%time.Second != 0 {
		return false
	}

	if !p.StrictLockPresets {
		return true
	}

	for _, preset := range p.LockPresets {
		if time.Duration(preset)*time.Second == lock {
			return true
		}
	}

	return false
}

// Constants policy values as exposed by read accessors
type Constants struct {
	LiquidationThreshold uint64       `json:"liquidation_threshold"`
	LiquidationBonus     uint64       `json:"liquidation_bonus"`
	LiquidationPrecision uint64       `json:"liquidation_precision"`
	Precision            *uint256.Int `json:"precision"`
	MinHealthFactor      *uint256.Int `json:"min_health_factor"`
	RatePrecision        uint64       `json:"rate_precision"`
	StalePriceTimeout    int64        `json:"stale_price_timeout"`
	SavingsAsset         string       `json:"savings_asset"`
	LockPresets          []int64      `json:"lock_presets"`
}

// Constants snapshot of the policy constants
func (p *Policy) Constants() Constants {
	return Constants{
		LiquidationThreshold: p.LiquidationThreshold,
		LiquidationBonus:     p.LiquidationBonus,
		LiquidationPrecision: LiquidationPrecision,
		Precision:            number.Clone(Precision),
		MinHealthFactor:      number.Clone(MinHealthFactor),
		RatePrecision:        RatePrecision,
		StalePriceTimeout:    p.StalePriceTimeout,
		SavingsAsset:         p.SavingsAsset,
		LockPresets:          append([]int64(nil), p.LockPresets...),
	}
}

package config

import (
	"cdp/core"
)

const (
	defaultEngineAddress = "cdp-engine"
	defaultDebtAsset     = "cdp"
	defaultLocation      = "UTC"
	defaultCacheTTL      = 60
	defaultFeedDecimals  = 8
)

func defaults(cfg *core.Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = defaultLocation
	}

	if cfg.Engine.Address == "" {
		cfg.Engine.Address = defaultEngineAddress
	}

	if cfg.Engine.DebtAsset == "" {
		cfg.Engine.DebtAsset = defaultDebtAsset
	}

	if cfg.PriceOracle.CacheTTL <= 0 {
		cfg.PriceOracle.CacheTTL = defaultCacheTTL
	}

	if cfg.PriceOracle.Decimals <= 0 {
		cfg.PriceOracle.Decimals = defaultFeedDecimals
	}

	defaultPolicy(&cfg.Policy)
}

// defaultPolicy fill unset policy values from the reference policy
func defaultPolicy(p *core.Policy) {
	d := core.DefaultPolicy()

	if p.LiquidationThreshold == 0 {
		p.LiquidationThreshold = d.LiquidationThreshold
	}

	if p.LiquidationBonus == 0 {
		p.LiquidationBonus = d.LiquidationBonus
	}

	if p.StalePriceTimeout == 0 {
		p.StalePriceTimeout = d.StalePriceTimeout
	}

	if p.OptimalUtilization == 0 {
		p.OptimalUtilization = d.OptimalUtilization
	}

	if p.BaseRate == 0 {
		p.BaseRate = d.BaseRate
	}

	if p.SlopeLow == 0 {
		p.SlopeLow = d.SlopeLow
	}

	if p.SlopeHigh == 0 {
		p.SlopeHigh = d.SlopeHigh
	}

	if p.BorrowCap == 0 {
		p.BorrowCap = d.BorrowCap
	}

	if p.DecayMultiplier == 0 {
		p.DecayMultiplier = d.DecayMultiplier
	}

	if p.DecayFloorPeriods == 0 {
		p.DecayFloorPeriods = d.DecayFloorPeriods
	}

	if len(p.LockPresets) == 0 {
		p.LockPresets = d.LockPresets
	}
}

package config

import (
	"testing"

	"cdp/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg core.Config
	require.Nil(t, Load("", &cfg))

	assert.Equal(t, defaultEngineAddress, cfg.Engine.Address)
	assert.Equal(t, defaultDebtAsset, cfg.Engine.DebtAsset)
	assert.Equal(t, int32(8), cfg.PriceOracle.Decimals)
	assert.Equal(t, core.DefaultPolicy(), cfg.Policy)
}

func TestDefaultPolicyKeepsOverrides(t *testing.T) {
	p := core.Policy{
		LiquidationThreshold: 60,
		SavingsAsset:         "usdc",
		StrictLockPresets:    true,
	}
	defaultPolicy(&p)

	assert.Equal(t, uint64(60), p.LiquidationThreshold)
	assert.Equal(t, uint64(10), p.LiquidationBonus)
	assert.Equal(t, "usdc", p.SavingsAsset)
	assert.True(t, p.StrictLockPresets)
	assert.Len(t, p.LockPresets, 2)
}

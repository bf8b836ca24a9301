package views

import (
	"testing"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestAccountView(t *testing.T) {
	s := &core.AccountSnapshot{
		Address:    "alice",
		DebtMinted: number.Ether("100"),
		Collateral: map[string]*uint256.Int{
			"weth": number.Ether("1.5"),
			"wbtc": number.Ether("0.25"),
		},
		CollateralValue: number.Ether("2000"),
		HealthFactor:    number.Ether("10"),
	}

	v := AccountView([]string{"wbtc", "weth", "usdc"}, s)
	assert.Equal(t, "100000000000000000000", v.DebtMinted.Amount)
	assert.Equal(t, "100", v.DebtMinted.Human.String())
	if assert.Len(t, v.Collateral, 2) {
		assert.Equal(t, "wbtc", v.Collateral[0].AssetID)
		assert.Equal(t, "0.25", v.Collateral[0].Human.String())
		assert.Equal(t, "weth", v.Collateral[1].AssetID)
	}
	assert.Equal(t, "10", v.HealthFactor.Human.String())
}

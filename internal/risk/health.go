package risk

import (
	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// HealthFactor ratio of threshold adjusted collateral value to debt, 18 decimals
//
// adjusted = collateral * threshold / 100
// health_factor = adjusted * 1e18 / debt
func HealthFactor(debt, collateralUsd *uint256.Int, threshold uint64) (*uint256.Int, error) {
	if number.IsZero(debt) {
		return number.Max(), nil
	}

	adjusted, err := number.MulDiv(collateralUsd, uint256.NewInt(threshold), uint256.NewInt(core.LiquidationPrecision))
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}

	hf, err := number.MulDiv(adjusted, core.Precision, debt)
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}

	return hf, nil
}

// Broken below the minimum health factor
func Broken(hf *uint256.Int) bool {
	return hf.Lt(core.MinHealthFactor)
}

// WithBonus amount plus bonus percent of it, returns total and bonus
func WithBonus(amount *uint256.Int, bonusPct uint64) (*uint256.Int, *uint256.Int, error) {
	bonus, err := number.MulDiv(amount, uint256.NewInt(bonusPct), uint256.NewInt(core.LiquidationPrecision))
	if err != nil {
		return nil, nil, core.ErrArithmeticOverflow
	}

	total, err := number.Add(amount, bonus)
	if err != nil {
		return nil, nil, core.ErrArithmeticOverflow
	}

	return total, bonus, nil
}

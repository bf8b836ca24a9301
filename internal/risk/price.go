package risk

import (
	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// NormalizePrice feed answer scaled to 18 decimals
func NormalizePrice(round *core.PriceRound) (*uint256.Int, error) {
	if round == nil || !round.Answer.IsPositive() {
		return nil, core.ErrStalePrice
	}

	price, err := number.FromDecimal(round.Answer, core.PrecisionDecimals-round.Decimals)
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}

	if price.IsZero() {
		return nil, core.ErrStalePrice
	}

	return price, nil
}

// ValueOf usd value of amount at price, both 18 decimals
//
// value = amount * price / 1e18
func ValueOf(price, amount *uint256.Int) (*uint256.Int, error) {
	v, err := number.MulDiv(amount, price, core.Precision)
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}

	return v, nil
}

// AmountFor amount worth usd at price
//
// amount = usd * 1e18 / price
func AmountFor(price, usd *uint256.Int) (*uint256.Int, error) {
	if number.IsZero(price) {
		return nil, core.ErrStalePrice
	}

	v, err := number.MulDiv(usd, core.Precision, price)
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}

	return v, nil
}

package risk

import (
	"math/rand"
	"testing"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrice(t *testing.T) {
	price, err := NormalizePrice(&core.PriceRound{
		Answer:   decimal.NewFromInt(200000000000),
		Decimals: 8,
	})
	require.Nil(t, err)
	assert.Equal(t, number.Ether("2000").Dec(), price.Dec())

	_, err = NormalizePrice(&core.PriceRound{Answer: decimal.Zero, Decimals: 8})
	assert.ErrorIs(t, err, core.ErrStalePrice)

	_, err = NormalizePrice(&core.PriceRound{Answer: decimal.NewFromInt(-1), Decimals: 8})
	assert.ErrorIs(t, err, core.ErrStalePrice)
}

func TestValueOfAmountFor(t *testing.T) {
	price := number.Ether("2000")

	value, err := ValueOf(price, number.Ether("10"))
	require.Nil(t, err)
	assert.Equal(t, number.Ether("20000").Dec(), value.Dec())

	amount, err := AmountFor(price, number.Ether("100"))
	require.Nil(t, err)
	assert.Equal(t, number.Ether("0.05").Dec(), amount.Dec())

	_, err = AmountFor(number.Zero(), number.Ether("1"))
	assert.ErrorIs(t, err, core.ErrStalePrice)
}

func TestRoundTripWithinOneUnit(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	prices := []*uint256.Int{
		number.Ether("1"),
		number.Ether("1.37"),
		number.Ether("2000"),
		number.Ether("61234.12345678"),
	}

	for _, price := range prices {
		for i := 0; i < 500; i++ {
			amount := uint256.NewInt(r.Uint64())
			amount.Mul(amount, uint256.NewInt(uint64(r.Intn(1000)+1)))

			value, err := ValueOf(price, amount)
			require.Nil(t, err)
			back, err := AmountFor(price, value)
			require.Nil(t, err)

			require.True(t, back.Cmp(amount) <= 0, "round trip must not create value")
			diff := new(uint256.Int).Sub(amount, back)
			require.True(t, diff.LtUint64(2), "price %s amount %s back %s", price, amount, back)
		}
	}
}

func TestRoundTripIsNotIdempotent(t *testing.T) {
	// 1/3 usd per unit makes every conversion truncate
	price := uint256.NewInt(333333333333333333)
	amount := uint256.NewInt(10)

	prev := amount
	drifted := false
	for i := 0; i < 5; i++ {
		value, err := ValueOf(price, prev)
		require.Nil(t, err)
		next, err := AmountFor(price, value)
		require.Nil(t, err)

		require.True(t, next.Cmp(prev) <= 0)
		if next.Lt(prev) {
			drifted = true
		}
		prev = next
	}

	assert.True(t, drifted)
}

package oracle

import (
	"context"
	"testing"
	"time"

	"cdp/core"
	"cdp/pkg/number"
	"cdp/service/feed"

	"github.com/facebookgo/clock"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOracle(t *testing.T) (*Oracle, *feed.Static, *clock.Mock) {
	registry, err := core.NewAssetRegistry([]string{"eth"}, []string{"eth-usd"})
	require.Nil(t, err)

	clk := clock.NewMock()
	clk.Add(24 * time.Hour)

	static := feed.NewStatic(8)
	static.Set(decimal.NewFromInt(2000), clk.Now())

	source := feed.NewSource().Register("eth-usd", static)
	return New(registry, source, clk, core.DefaultPolicy()), static, clk
}

func TestOraclePrice(t *testing.T) {
	ctx := context.Background()
	o, _, _ := newOracle(t)

	price, err := o.Price(ctx, "eth")
	require.Nil(t, err)
	assert.Equal(t, number.Ether("2000").Dec(), price.Dec())

	value, err := o.ValueOf(ctx, "eth", number.Ether("10"))
	require.Nil(t, err)
	assert.Equal(t, number.Ether("20000").Dec(), value.Dec())

	amount, err := o.AmountFor(ctx, "eth", number.Ether("20000"))
	require.Nil(t, err)
	assert.Equal(t, number.Ether("10").Dec(), amount.Dec())

	_, err = o.Price(ctx, "btc")
	assert.ErrorIs(t, err, core.ErrAssetNotAllowed)
}

func TestOracleStaleness(t *testing.T) {
	ctx := context.Background()

	t.Run("window", func(t *testing.T) {
		o, _, clk := newOracle(t)

		clk.Add(3 * time.Hour)
		_, err := o.Price(ctx, "eth")
		assert.Nil(t, err)

		clk.Add(time.Second)
		_, err = o.Price(ctx, "eth")
		assert.ErrorIs(t, err, core.ErrStalePrice)
	})

	t.Run("invalid rounds", func(t *testing.T) {
		o, static, clk := newOracle(t)

		for _, round := range []core.PriceRound{
			{RoundID: 2, AnsweredInRound: 2, Answer: decimal.Zero, Decimals: 8, UpdatedAt: clk.Now()},
			{RoundID: 2, AnsweredInRound: 2, Answer: decimal.NewFromInt(-5), Decimals: 8, UpdatedAt: clk.Now()},
			{RoundID: 2, AnsweredInRound: 2, Answer: decimal.NewFromInt(1), Decimals: 8},
			{RoundID: 3, AnsweredInRound: 2, Answer: decimal.NewFromInt(1), Decimals: 8, UpdatedAt: clk.Now()},
		} {
			static.SetRound(round)
			_, err := o.Price(ctx, "eth")
			assert.ErrorIs(t, err, core.ErrStalePrice)
		}
	})

	t.Run("missing feed", func(t *testing.T) {
		registry, err := core.NewAssetRegistry([]string{"eth"}, []string{"eth-usd"})
		require.Nil(t, err)

		o := New(registry, feed.NewSource(), clock.NewMock(), core.DefaultPolicy())
		_, err = o.Price(ctx, "eth")
		assert.ErrorIs(t, err, core.ErrStalePrice)
	})
}

func TestOracleTotalValue(t *testing.T) {
	ctx := context.Background()
	o, _, _ := newOracle(t)

	total, err := o.TotalValue(ctx, map[string]*uint256.Int{
		"eth": number.Ether("1.5"),
		"btc": number.Zero(),
	})
	require.Nil(t, err)
	assert.Equal(t, number.Ether("3000").Dec(), total.Dec())

	// unregistered assets are never priced
	total, err = o.TotalValue(ctx, map[string]*uint256.Int{"btc": number.Ether("1")})
	require.Nil(t, err)
	assert.True(t, total.IsZero())
}

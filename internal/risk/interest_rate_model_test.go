package risk

import (
	"testing"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilization(t *testing.T) {
	_, err := Utilization(number.Zero(), number.Zero())
	assert.ErrorIs(t, err, core.ErrDivisionByZeroUtilization)

	u, err := Utilization(number.Zero(), number.Ether("100"))
	require.Nil(t, err)
	assert.EqualValues(t, 0, u)

	u, err = Utilization(number.Ether("45"), number.Ether("100"))
	require.Nil(t, err)
	assert.EqualValues(t, 450, u)

	u, err = Utilization(number.Ether("300"), number.Ether("100"))
	require.Nil(t, err)
	assert.EqualValues(t, 1000, u)
}

func TestRateCurve(t *testing.T) {
	m := NewInterestRateModel(core.DefaultPolicy())

	assert.EqualValues(t, 6000, m.Rate(0))
	assert.EqualValues(t, 8000, m.Rate(400))
	assert.EqualValues(t, 10000, m.Rate(800))
	assert.EqualValues(t, 40000, m.Rate(900))
	assert.EqualValues(t, 70000, m.Rate(1000))
	assert.EqualValues(t, 70000, m.Rate(5000))
}

func TestRateContinuousAtKink(t *testing.T) {
	for _, p := range []core.Policy{
		core.DefaultPolicy(),
		{BaseRate: 1234, SlopeLow: 777, SlopeHigh: 99999, OptimalUtilization: 650},
		{BaseRate: 0, SlopeLow: 1, SlopeHigh: 1, OptimalUtilization: 1},
	} {
		m := NewInterestRateModel(p)
		k := m.OptimalUtilization

		low := m.BaseRate + k*m.SlopeLow/m.OptimalUtilization
		high := m.BaseRate + m.SlopeLow + (k-m.OptimalUtilization)*m.SlopeHigh/(core.UtilizationPrecision-m.OptimalUtilization)
		assert.Equal(t, low, high)
		assert.Equal(t, low, m.Rate(k))

		// monotone across the kink
		assert.True(t, m.Rate(k-1) <= m.Rate(k))
		assert.True(t, m.Rate(k) <= m.Rate(k+1))
	}
}

func TestApplyRate(t *testing.T) {
	fee, err := ApplyRate(number.Ether("100"), 6000)
	require.Nil(t, err)
	assert.Equal(t, number.Ether("6").Dec(), fee.Dec())

	v, err := ApplyRate(uint256.NewInt(99), 1000)
	require.Nil(t, err)
	assert.EqualValues(t, 0, v.Uint64())
}

func TestOriginationFee(t *testing.T) {
	m := NewInterestRateModel(core.DefaultPolicy())

	// 10 of 1000 borrowed is utilization 10, rate 6050
	fee, rate, err := m.OriginationFee(number.Ether("10"), number.Ether("10"), number.Ether("1000"))
	require.Nil(t, err)
	assert.EqualValues(t, 6050, rate)
	assert.Equal(t, number.Ether("0.605").Dec(), fee.Dec())

	_, _, err = m.OriginationFee(number.Ether("10"), number.Ether("10"), number.Zero())
	assert.ErrorIs(t, err, core.ErrDivisionByZeroUtilization)
}

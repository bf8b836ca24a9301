package risk

import (
	"testing"
	"time"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecayFractionTotalAndMonotone(t *testing.T) {
	const floor = 10

	assert.Equal(t, core.Precision.Dec(), DecayFraction(0, 87, floor).Dec())
	assert.Equal(t, "870000000000000000", DecayFraction(1, 87, floor).Dec())
	assert.Equal(t, "756900000000000000", DecayFraction(2, 87, floor).Dec())

	prev := DecayFraction(0, 87, floor)
	for n := uint64(1); n <= floor; n++ {
		cur := DecayFraction(n, 87, floor)
		assert.True(t, cur.Lt(prev), "period %d must decrease", n)
		prev = cur
	}

	assert.True(t, DecayFraction(floor-1, 87, floor).Sign() > 0)
	for _, n := range []uint64{floor, floor + 1, 1000, ^uint64(0)} {
		assert.True(t, DecayFraction(n, 87, floor).IsZero(), "period %d", n)
	}
}

func TestOverduePeriods(t *testing.T) {
	opened := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lock := 30 * 24 * time.Hour

	assert.EqualValues(t, 0, OverduePeriods(opened, lock, opened))
	assert.EqualValues(t, 0, OverduePeriods(opened, lock, opened.Add(lock-time.Second)))
	assert.EqualValues(t, 0, OverduePeriods(opened, lock, opened.Add(lock)))
	assert.EqualValues(t, 0, OverduePeriods(opened, lock, opened.Add(2*lock-time.Second)))
	assert.EqualValues(t, 1, OverduePeriods(opened, lock, opened.Add(2*lock)))
	assert.EqualValues(t, 10, OverduePeriods(opened, lock, opened.Add(11*lock)))
}

func TestApplyDecay(t *testing.T) {
	v, err := ApplyDecay(number.Ether("100"), DecayFraction(1, 87, 10))
	require.Nil(t, err)
	assert.Equal(t, number.Ether("87").Dec(), v.Dec())

	v, err = ApplyDecay(number.Ether("100"), DecayFraction(10, 87, 10))
	require.Nil(t, err)
	assert.True(t, v.IsZero())
}

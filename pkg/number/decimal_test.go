package number

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

func TestFromDecimal(t *testing.T) {
	data := map[string]string{
		"1":           "1000000000000000000",
		"2000.5":      "2000500000000000000000",
		"0.000000001": "1000000000",
		"0":           "0",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			x, err := FromDecimal(Decimal(k), 18)
			assert.Equal(t, nil, err)
			assert.Equal(t, v, x.Dec())
			assert.Equal(t, Decimal(k).String(), ToDecimal(x, 18).String())
		})
	}

	_, err := FromDecimal(decimal.NewFromInt(-1), 0)
	assert.Equal(t, ErrNegative, err)
}

func TestOverflow(t *testing.T) {
	_, err := Add(Max(), uint256.NewInt(1))
	assert.Equal(t, ErrOverflow, err)

	_, err = Sub(uint256.NewInt(1), uint256.NewInt(2))
	assert.Equal(t, ErrUnderflow, err)

	_, err = MulDiv(uint256.NewInt(1), uint256.NewInt(1), Zero())
	assert.Equal(t, ErrDivisionByZero, err)

	// 512 bit intermediate
	v, err := MulDiv(Max(), uint256.NewInt(10), uint256.NewInt(20))
	assert.Equal(t, nil, err)
	assert.Equal(t, new(uint256.Int).Rsh(Max(), 1).Dec(), v.Dec())
}

func TestParse(t *testing.T) {
	v, err := Parse("1000")
	assert.Equal(t, nil, err)
	assert.Equal(t, "1000", v.Dec())

	_, err = Parse("1.5")
	assert.NotEqual(t, nil, err)

	assert.Equal(t, "1500000000000000000", Ether("1.5").Dec())
}

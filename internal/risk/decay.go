package risk

import (
	"time"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// DecayFraction share of collateral returned after n overdue periods, 18 decimals.
// Every n is defined: 1.0 at n = 0, multiplied by multiplier percent per period,
// and exactly zero from the floor period on.
func DecayFraction(n, multiplier, floor uint64) *uint256.Int {
	if n >= floor {
		return number.Zero()
	}

	f := number.Clone(core.Precision)
	pct := uint256.NewInt(multiplier)
	hundred := uint256.NewInt(100)
	for i := uint64(0); i < n; i++ {
		f.Mul(f, pct)
		f.Div(f, hundred)
	}

	return f
}

// OverduePeriods full lock periods elapsed beyond the first one
func OverduePeriods(openedAt time.Time, lockPeriod time.Duration, now time.Time) uint64 {
	if lockPeriod <= 0 || now.Before(openedAt.Add(lockPeriod)) {
		return 0
	}

	return uint64(now.Sub(openedAt)/lockPeriod) - 1
}

// ApplyDecay amount * fraction / 1e18
func ApplyDecay(amount, fraction *uint256.Int) (*uint256.Int, error) {
	v, err := number.MulDiv(amount, fraction, core.Precision)
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}

	return v, nil
}

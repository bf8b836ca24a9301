package risk

import (
	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// InterestRateModel two segment utilization curve
type InterestRateModel struct {
	BaseRate           uint64
	SlopeLow           uint64
	SlopeHigh          uint64
	OptimalUtilization uint64
}

// NewInterestRateModel rate model of the policy
func NewInterestRateModel(p core.Policy) *InterestRateModel {
	return &InterestRateModel{
		BaseRate:           p.BaseRate,
		SlopeLow:           p.SlopeLow,
		SlopeHigh:          p.SlopeHigh,
		OptimalUtilization: p.OptimalUtilization,
	}
}

// Utilization per-mille share of savings lent out
//
// utilization = total_borrowed * 1000 / total_saved, capped at 1000
func Utilization(totalBorrowed, totalSaved *uint256.Int) (uint64, error) {
	if number.IsZero(totalSaved) {
		return 0, core.ErrDivisionByZeroUtilization
	}

	u, err := number.MulDiv(totalBorrowed, uint256.NewInt(core.UtilizationPrecision), totalSaved)
	if err != nil {
		return 0, core.ErrArithmeticOverflow
	}

	if u.GtUint64(core.UtilizationPrecision) {
		return core.UtilizationPrecision, nil
	}

	return u.Uint64(), nil
}

// Rate rate at utilization u, RatePrecision units
//
// below the kink: base + u * slope_low / optimal
// above the kink: base + slope_low + (u - optimal) * slope_high / (1000 - optimal)
func (m *InterestRateModel) Rate(u uint64) uint64 {
	if u > core.UtilizationPrecision {
		u = core.UtilizationPrecision
	}

	if u < m.OptimalUtilization {
		return m.BaseRate + u*m.SlopeLow/m.OptimalUtilization
	}

	excess := u - m.OptimalUtilization
	return m.BaseRate + m.SlopeLow + excess*m.SlopeHigh/(core.UtilizationPrecision-m.OptimalUtilization)
}

// CurrentRate rate of the pools, fails on empty savings
func (m *InterestRateModel) CurrentRate(totalBorrowed, totalSaved *uint256.Int) (uint64, error) {
	u, err := Utilization(totalBorrowed, totalSaved)
	if err != nil {
		return 0, err
	}

	return m.Rate(u), nil
}

// ApplyRate amount * rate / RatePrecision, used for yield and origination fee
func ApplyRate(amount *uint256.Int, rate uint64) (*uint256.Int, error) {
	v, err := number.MulDiv(amount, uint256.NewInt(rate), uint256.NewInt(core.RatePrecision))
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}

	return v, nil
}

// OriginationFee fee of borrowing amount priced at the utilization the borrow leads to.
// Returns the fee and the rate it was charged at.
func (m *InterestRateModel) OriginationFee(amount, totalBorrowedAfter, totalSaved *uint256.Int) (*uint256.Int, uint64, error) {
	rate, err := m.CurrentRate(totalBorrowedAfter, totalSaved)
	if err != nil {
		return nil, 0, err
	}

	fee, err := ApplyRate(amount, rate)
	if err != nil {
		return nil, 0, err
	}

	return fee, rate, nil
}

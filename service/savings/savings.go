package savings

import (
	"context"
	"time"

	"cdp/core"
	"cdp/internal/metrics"
	"cdp/internal/risk"
	"cdp/pkg/number"
	"cdp/service/operation"

	"github.com/holiman/uint256"
)

var _ core.ISavingsService = (*Service)(nil)

// Service time locked savings of the savings asset and borrows against collateral
type Service struct {
	registry *core.AssetRegistry
	policy   core.Policy
	model    *risk.InterestRateModel
	runner   *operation.Runner
	bank     *operation.Bank
	oracle   core.IPriceOracle
	metrics  *metrics.Metrics
}

// New new savings service, the savings asset must be registered
func New(
	registry *core.AssetRegistry,
	policy core.Policy,
	runner *operation.Runner,
	bank *operation.Bank,
	oracle core.IPriceOracle,
	m *metrics.Metrics,
) (*Service, error) {
	if registry == nil || !registry.Allowed(policy.SavingsAsset) {
		return nil, core.ErrInvalidConfiguration
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		registry: registry,
		policy:   policy,
		model:    risk.NewInterestRateModel(policy),
		runner:   runner,
		bank:     bank,
		oracle:   oracle,
		metrics:  m,
	}, nil
}

// SavingsPosition savings position of account
func (s *Service) SavingsPosition(ctx context.Context, account string) (*core.SavingsPosition, error) {
	return s.runner.Ledger().FindSavings(ctx, account)
}

// BorrowPosition borrow position of account
func (s *Service) BorrowPosition(ctx context.Context, account string) (*core.BorrowPosition, error) {
	return s.runner.Ledger().FindBorrow(ctx, account)
}

// BorrowHealthFactor health factor of account's borrow position
func (s *Service) BorrowHealthFactor(ctx context.Context, account string) (*uint256.Int, error) {
	b, err := s.runner.Ledger().FindBorrow(ctx, account)
	if err != nil {
		return nil, err
	}

	return s.healthFactor(ctx, b)
}

// Status pools with utilization and rate. Empty pools report zero
// utilization and the base rate, the rate a first deposit snapshots.
func (s *Service) Status(ctx context.Context) (*core.PoolStatus, error) {
	pools, err := s.runner.Ledger().FindPools(ctx)
	if err != nil {
		return nil, err
	}

	status := &core.PoolStatus{Pools: pools}
	if number.IsZero(pools.TotalSaved) {
		status.Rate = s.model.Rate(0)
		return status, nil
	}

	if status.Utilization, err = risk.Utilization(pools.TotalBorrowed, pools.TotalSaved); err != nil {
		return nil, err
	}

	status.Rate = s.model.Rate(status.Utilization)
	return status, nil
}

// healthFactor borrowed savings asset valued as debt against the position's collateral
func (s *Service) healthFactor(ctx context.Context, b *core.BorrowPosition) (*uint256.Int, error) {
	if !b.Open() {
		return number.Max(), nil
	}

	debt, err := s.oracle.ValueOf(ctx, s.policy.SavingsAsset, b.AmountBorrowed)
	if err != nil {
		return nil, err
	}

	value, err := s.oracle.TotalValue(ctx, b.CollateralByAsset)
	if err != nil {
		return nil, err
	}

	return risk.HealthFactor(debt, value, s.policy.LiquidationThreshold)
}

func (s *Service) ensureHealthy(ctx context.Context, b *core.BorrowPosition) (*uint256.Int, error) {
	hf, err := s.healthFactor(ctx, b)
	if err != nil {
		return nil, err
	}

	if risk.Broken(hf) {
		return nil, &core.HealthFactorError{Account: b.Address, HealthFactor: hf}
	}

	return hf, nil
}

func (s *Service) checkLock(lock time.Duration) error {
	if !s.policy.LockAllowed(lock) {
		return core.ErrInvalidLockDuration
	}

	return nil
}

func checkAmount(amounts ...*uint256.Int) error {
	for _, amount := range amounts {
		if number.IsZero(amount) {
			return core.ErrZeroAmount
		}
	}

	return nil
}

func overflow(v *uint256.Int, err error) (*uint256.Int, error) {
	if err != nil {
		return nil, core.ErrArithmeticOverflow
	}

	return v, nil
}

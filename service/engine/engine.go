package engine

import (
	"cdp/core"
	"cdp/internal/metrics"
	"cdp/pkg/number"
	"cdp/service/operation"

	"github.com/holiman/uint256"
)

var _ core.IEngine = (*Engine)(nil)

// Engine collateral ledger with health checks and liquidation
type Engine struct {
	registry *core.AssetRegistry
	policy   core.Policy
	runner   *operation.Runner
	bank     *operation.Bank
	oracle   core.IPriceOracle
	metrics  *metrics.Metrics
}

// New new engine
func New(
	registry *core.AssetRegistry,
	policy core.Policy,
	runner *operation.Runner,
	bank *operation.Bank,
	oracle core.IPriceOracle,
	m *metrics.Metrics,
) (*Engine, error) {
	if registry == nil {
		return nil, core.ErrInvalidConfiguration
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		registry: registry,
		policy:   policy,
		runner:   runner,
		bank:     bank,
		oracle:   oracle,
		metrics:  m,
	}, nil
}

// Registry allowed assets and feeds
func (e *Engine) Registry() *core.AssetRegistry {
	return e.registry
}

// Policy risk policy
func (e *Engine) Policy() core.Policy {
	return e.policy
}

func (e *Engine) checkAsset(asset string) error {
	if !e.registry.Allowed(asset) {
		return core.ErrAssetNotAllowed
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

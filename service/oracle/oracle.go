package oracle

import (
	"context"

	"cdp/core"
	"cdp/internal/risk"
	"cdp/pkg/number"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

var _ core.IPriceOracle = (*Oracle)(nil)

// Oracle price adapter over the registry feeds
type Oracle struct {
	registry *core.AssetRegistry
	source   core.IPriceFeedSource
	clock    clock.Clock
	policy   core.Policy
}

// New new price oracle
func New(registry *core.AssetRegistry, source core.IPriceFeedSource, clk clock.Clock, policy core.Policy) *Oracle {
	return &Oracle{
		registry: registry,
		source:   source,
		clock:    clk,
		policy:   policy,
	}
}

// Round latest round of asset's feed, fails with ErrStalePrice when it can not be trusted
func (o *Oracle) Round(ctx context.Context, asset string) (*core.PriceRound, error) {
	log := logger.FromContext(ctx).WithField("asset", asset)

	feedID, err := o.registry.Feed(asset)
	if err != nil {
		return nil, err
	}

	feed, err := o.source.Feed(ctx, feedID)
	if err != nil {
		log.WithError(err).Errorln("oracle: feed not available")
		return nil, core.ErrStalePrice
	}

	round, err := feed.LatestRound(ctx)
	if err != nil {
		log.WithError(err).Errorln("oracle: read feed")
		return nil, core.ErrStalePrice
	}

	if err := o.check(round); err != nil {
		log.WithField("round", round.RoundID).
			WithField("updated_at", round.UpdatedAt).
			Warnln("oracle: stale round")
		return nil, err
	}

	return round, nil
}

func (o *Oracle) check(round *core.PriceRound) error {
	switch {
	case round == nil:
		return core.ErrStalePrice
	case !round.Answer.IsPositive():
		return core.ErrStalePrice
	case round.UpdatedAt.IsZero():
		return core.ErrStalePrice
	case round.AnsweredInRound < round.RoundID:
		return core.ErrStalePrice
	case o.clock.Now().Sub(round.UpdatedAt) > o.policy.StaleTimeout():
		return core.ErrStalePrice
	}

	return nil
}

// Price USD price of one unit of asset, 18 decimals
func (o *Oracle) Price(ctx context.Context, asset string) (*uint256.Int, error) {
	round, err := o.Round(ctx, asset)
	if err != nil {
		return nil, err
	}

	return risk.NormalizePrice(round)
}

// ValueOf USD value of amount of asset
func (o *Oracle) ValueOf(ctx context.Context, asset string, amount *uint256.Int) (*uint256.Int, error) {
	price, err := o.Price(ctx, asset)
	if err != nil {
		return nil, err
	}

	return risk.ValueOf(price, amount)
}

// AmountFor amount of asset worth usd
func (o *Oracle) AmountFor(ctx context.Context, asset string, usd *uint256.Int) (*uint256.Int, error) {
	price, err := o.Price(ctx, asset)
	if err != nil {
		return nil, err
	}

	return risk.AmountFor(price, usd)
}

// TotalValue USD value of balances, summed in registry order
func (o *Oracle) TotalValue(ctx context.Context, balances map[string]*uint256.Int) (*uint256.Int, error) {
	total := number.Zero()
	for _, asset := range o.registry.Assets() {
		amount := balances[asset]
		if number.IsZero(amount) {
			continue
		}

		value, err := o.ValueOf(ctx, asset, amount)
		if err != nil {
			return nil, err
		}

		if total, err = number.Add(total, value); err != nil {
			return nil, core.ErrArithmeticOverflow
		}
	}

	return total, nil
}

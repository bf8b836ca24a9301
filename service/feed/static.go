package feed

import (
	"context"
	"sync"
	"time"

	"cdp/core"

	"github.com/shopspring/decimal"
)

// Static feed holding a round set by hand
type Static struct {
	mu    sync.RWMutex
	round core.PriceRound
}

// NewStatic new static feed with the given decimals
func NewStatic(decimals int32) *Static {
	return &Static{
		round: core.PriceRound{Decimals: decimals},
	}
}

// Set publish a new round with a human USD price
func (f *Static) Set(price decimal.Decimal, updatedAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.round.RoundID++
	f.round.AnsweredInRound = f.round.RoundID
	f.round.Answer = price.Shift(f.round.Decimals).Truncate(0)
	f.round.UpdatedAt = updatedAt
}

// SetRound replace the round as is
func (f *Static) SetRound(round core.PriceRound) {
	f.mu.Lock()
	f.round = round
	f.mu.Unlock()
}

// LatestRound implements core.IPriceFeed
func (f *Static) LatestRound(_ context.Context) (*core.PriceRound, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	round := f.round
	return &round, nil
}

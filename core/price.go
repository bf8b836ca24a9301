package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// PriceRound latest answer of a price feed
type PriceRound struct {
	RoundID         uint64 `json:"round_id"`
	AnsweredInRound uint64 `json:"answered_in_round"`
	// Answer integer price in feed units, Answer / 10^Decimals is USD
	Answer    decimal.Decimal `json:"answer"`
	Decimals  int32           `json:"decimals"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Price human readable USD price
func (r *PriceRound) Price() decimal.Decimal {
	return r.Answer.Shift(-r.Decimals)
}

// IPriceFeed price source of one asset
type IPriceFeed interface {
	LatestRound(ctx context.Context) (*PriceRound, error)
}

// IPriceFeedSource price feeds by feed id
type IPriceFeedSource interface {
	Feed(ctx context.Context, feedID string) (IPriceFeed, error)
}

// PriceTicker price ticker
type PriceTicker struct {
	Provider  string          `json:"provider,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// IPriceOracle price adapter, rejects stale rounds and normalises to 18 decimals
type IPriceOracle interface {
	// Round latest trusted round of asset's feed
	Round(ctx context.Context, asset string) (*PriceRound, error)
	// Price USD price of one whole unit of asset, 18 decimals
	Price(ctx context.Context, asset string) (*uint256.Int, error)
	// ValueOf USD value of amount of asset, 18 decimals
	ValueOf(ctx context.Context, asset string, amount *uint256.Int) (*uint256.Int, error)
	// AmountFor amount of asset worth usd
	AmountFor(ctx context.Context, asset string, usd *uint256.Int) (*uint256.Int, error)
	// TotalValue USD value of balances, zero balances are not priced
	TotalValue(ctx context.Context, balances map[string]*uint256.Int) (*uint256.Int, error)
}

package feed

import (
	"context"
	"fmt"
	"time"

	"cdp/core"
	"cdp/pkg/id"
	"cdp/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// TickerClient pulls price tickers from the price oracle service
type TickerClient struct {
	endpoint string
	decimals int32
	cache    gcache.Cache
	sf       *singleflight.Group
}

// NewTickerClient new ticker client, pulled tickers are reused for ttl
func NewTickerClient(cfg core.PriceOracle) *TickerClient {
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &TickerClient{
		endpoint: cfg.EndPoint,
		decimals: cfg.Decimals,
		cache:    gcache.New(256).LRU().Expiration(ttl).Build(),
		sf:       &singleflight.Group{},
	}
}

// Feed ticker feed of symbol
func (c *TickerClient) Feed(symbol string) *Ticker {
	return &Ticker{client: c, symbol: symbol}
}

// Pull fetch the latest ticker of symbol, bypassing the cache
func (c *TickerClient) Pull(ctx context.Context, symbol string) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s", c.endpoint, symbol)
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.WithRequestID(ctx, id.GenTraceID()).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	c.cache.Set(symbol, &ticker)
	return &ticker, nil
}

// Ticker latest cached ticker of symbol, pulled on miss
func (c *TickerClient) Ticker(ctx context.Context, symbol string) (*core.PriceTicker, error) {
	if v, err := c.cache.Get(symbol); err == nil {
		if ticker, ok := v.(*core.PriceTicker); ok {
			return ticker, nil
		}
	}

	v, err, _ := c.sf.Do(symbol, func() (interface{}, error) {
		return c.Pull(ctx, symbol)
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.PriceTicker), nil
}

// Ticker feed over one symbol of the ticker service
type Ticker struct {
	client *TickerClient
	symbol string
}

// LatestRound implements core.IPriceFeed, the ticker timestamp doubles as round id
func (t *Ticker) LatestRound(ctx context.Context) (*core.PriceRound, error) {
	ticker, err := t.client.Ticker(ctx, t.symbol)
	if err != nil {
		return nil, err
	}

	round := &core.PriceRound{
		Answer:   ticker.Price.Shift(t.client.decimals).Truncate(0),
		Decimals: t.client.decimals,
	}

	if ticker.Timestamp > 0 {
		round.RoundID = uint64(ticker.Timestamp)
		round.AnsweredInRound = round.RoundID
		round.UpdatedAt = time.Unix(ticker.Timestamp, 0)
	}

	return round, nil
}

package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cdp/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	f := NewStatic(8)
	now := time.Unix(1700000000, 0)
	f.Set(decimal.RequireFromString("2000.123456789"), now)

	round, err := f.LatestRound(context.Background())
	require.Nil(t, err)
	assert.EqualValues(t, 1, round.RoundID)
	assert.EqualValues(t, 1, round.AnsweredInRound)
	assert.Equal(t, "200012345678", round.Answer.String())
	assert.True(t, round.Price().Equal(decimal.RequireFromString("2000.12345678")))
	assert.Equal(t, now, round.UpdatedAt)
}

func TestSource(t *testing.T) {
	s := NewSource().Register("eth-usd", NewStatic(8))

	_, err := s.Feed(context.Background(), "eth-usd")
	assert.Nil(t, err)

	_, err = s.Feed(context.Background(), "btc-usd")
	assert.NotNil(t, err)
	assert.Equal(t, []string{"eth-usd"}, s.IDs())
}

func TestTicker(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/api/v2/tickers/ETH", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"provider":"test","symbol":"ETH","price":"1999.5","ts":1700000000}`))
	}))
	defer srv.Close()

	client := NewTickerClient(core.PriceOracle{EndPoint: srv.URL, CacheTTL: 60, Decimals: 8})
	feed := client.Feed("ETH")

	round, err := feed.LatestRound(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "199950000000", round.Answer.String())
	assert.EqualValues(t, 8, round.Decimals)
	assert.EqualValues(t, 1700000000, round.RoundID)
	assert.Equal(t, time.Unix(1700000000, 0), round.UpdatedAt)

	_, err = feed.LatestRound(context.Background())
	require.Nil(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

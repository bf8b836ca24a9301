package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cdp/core"
	"cdp/pkg/guard"
	"cdp/pkg/number"
	"cdp/service/engine"
	"cdp/service/feed"
	"cdp/service/operation"
	"cdp/service/oracle"
	"cdp/service/savings"
	"cdp/service/vault"
	"cdp/store/memory"

	"github.com/facebookgo/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	balances core.IBalanceStore
}

func newTestServer(t *testing.T) *testServer {
	registry, err := core.NewAssetRegistry([]string{"eth", "usdc"}, []string{"eth-usd", "usdc-usd"})
	require.Nil(t, err)

	clk := clock.NewMock()
	clk.Add(24 * time.Hour)

	ethFeed, usdcFeed := feed.NewStatic(8), feed.NewStatic(8)
	ethFeed.Set(decimal.NewFromInt(2000), clk.Now())
	usdcFeed.Set(decimal.NewFromInt(1), clk.Now())
	source := feed.NewSource().Register("eth-usd", ethFeed).Register("usdc-usd", usdcFeed)

	policy := core.DefaultPolicy()
	policy.SavingsAsset = "usdc"

	ledger := memory.NewLedgerStore()
	balances := memory.NewBalanceStore()
	transactions := memory.NewTransactionStore()
	runner := operation.NewRunner(guard.New(), ledger, transactions, clk, nil)
	bank := operation.NewBank(
		vault.NewCustody(balances, "engine"),
		vault.NewDebtToken(balances, "cdp", "engine"),
		"engine",
	)
	prices := oracle.New(registry, source, clk, policy)

	e, err := engine.New(registry, policy, runner, bank, prices, nil)
	require.Nil(t, err)
	s, err := savings.New(registry, policy, runner, bank, prices, nil)
	require.Nil(t, err)

	srv := httptest.NewServer(Handle(e, s, prices, transactions))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, balances: balances}
}

func (s *testServer) post(t *testing.T, path, body string) (int, map[string]interface{}) {
	resp, err := http.Post(s.URL+path, "application/json", strings.NewReader(body))
	require.Nil(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (s *testServer) get(t *testing.T, path string, v interface{}) int {
	resp, err := http.Get(s.URL + path)
	require.Nil(t, err)
	defer resp.Body.Close()

	require.Nil(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestCollateralFlow(t *testing.T) {
	s := newTestServer(t)
	require.Nil(t, s.balances.Move(context.Background(), "eth", "", "alice", number.Ether("10")))

	status, out := s.post(t, "/deposit-and-mint", `{"account":"alice","asset":"eth","collateral":"10000000000000000000","debt":"5000000000000000000000"}`)
	require.Equal(t, http.StatusOK, status, out)

	var account struct {
		DebtMinted struct {
			Human string `json:"human"`
		} `json:"debt_minted"`
		HealthFactor struct {
			Amount string `json:"amount"`
		} `json:"health_factor"`
	}
	assert.Equal(t, http.StatusOK, s.get(t, "/accounts/alice/", &account))
	assert.Equal(t, "5000", account.DebtMinted.Human)
	assert.Equal(t, "2000000000000000000", account.HealthFactor.Amount)

	status, out = s.post(t, "/debt/mint", `{"account":"alice","amount":"5000000000000000000001"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.EqualValues(t, core.ErrHealthFactorBroken, out["code"])

	status, out = s.post(t, "/collateral/deposit", `{"account":"alice","asset":"doge","amount":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.EqualValues(t, core.ErrAssetNotAllowed, out["code"])

	var transactions []*core.Transaction
	assert.Equal(t, http.StatusOK, s.get(t, "/transactions?account=alice", &transactions))
	assert.Len(t, transactions, 1)
}

func TestBindingErrors(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.post(t, "/collateral/deposit", `{"asset":"eth","amount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.post(t, "/collateral/deposit", `{"account":"alice","asset":"eth","amount":"1.5"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	var out map[string]interface{}
	assert.Equal(t, http.StatusNotFound, s.get(t, "/nothing", &out))
}

func TestPoolsAndPrices(t *testing.T) {
	s := newTestServer(t)

	var pools struct {
		Utilization uint64 `json:"utilization"`
		Rate        uint64 `json:"rate"`
	}
	assert.Equal(t, http.StatusOK, s.get(t, "/pools", &pools))
	assert.Equal(t, uint64(0), pools.Utilization)
	assert.Equal(t, uint64(6000), pools.Rate)

	var value struct {
		Human string `json:"human"`
	}
	assert.Equal(t, http.StatusOK, s.get(t, "/prices/eth/value?amount=1500000000000000000", &value))
	assert.Equal(t, "3000", value.Human)

	assert.Equal(t, http.StatusOK, s.get(t, "/prices/eth/amount-for?usd=1000000000000000000000", &value))
	assert.Equal(t, "0.5", value.Human)

	var pairs []core.AssetFeed
	assert.Equal(t, http.StatusOK, s.get(t, "/registry", &pairs))
	assert.Equal(t, []core.AssetFeed{{AssetID: "eth", FeedID: "eth-usd"}, {AssetID: "usdc", FeedID: "usdc-usd"}}, pairs)
}

func TestSavingsFlow(t *testing.T) {
	s := newTestServer(t)
	require.Nil(t, s.balances.Move(context.Background(), "usdc", "", "alice", number.Ether("1000")))

	status, out := s.post(t, "/savings/deposit", `{"account":"alice","amount":"1000000000000000000000","lock":2592000}`)
	require.Equal(t, http.StatusOK, status, out)

	status, out = s.post(t, "/savings/withdraw", `{"account":"alice","amount":"1000000000000000000000"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.EqualValues(t, core.ErrLockNotElapsed, out["code"])

	var position struct {
		Deposited struct {
			Human string `json:"human"`
		} `json:"deposited"`
		RateAtDeposit uint64 `json:"rate_at_deposit"`
	}
	assert.Equal(t, http.StatusOK, s.get(t, "/accounts/alice/savings", &position))
	assert.Equal(t, "1000", position.Deposited.Human)
	assert.Equal(t, uint64(6000), position.RateAtDeposit)
}

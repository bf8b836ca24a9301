package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"cdp/core"
	"cdp/pkg/guard"
	"cdp/pkg/number"
	"cdp/service/feed"
	"cdp/service/operation"
	"cdp/service/oracle"
	"cdp/service/vault"
	"cdp/store/memory"

	"github.com/facebookgo/clock"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	eth      = "eth"
	usdc     = "usdc"
	debt     = "cdp"
	treasury = "engine"
)

type harness struct {
	engine       *Engine
	ledger       core.ILedgerStore
	balances     core.IBalanceStore
	transactions core.ITransactionStore
	feeds        map[string]*feed.Static
	clock        *clock.Mock
}

type option func(custody core.ICustody, token core.IDebtToken) (core.ICustody, core.IDebtToken)

func newHarness(t *testing.T, opts ...option) *harness {
	registry, err := core.NewAssetRegistry([]string{eth, usdc}, []string{"eth-usd", "usdc-usd"})
	require.Nil(t, err)

	clk := clock.NewMock()
	clk.Add(365 * 24 * time.Hour)

	h := &harness{
		ledger:       memory.NewLedgerStore(),
		balances:     memory.NewBalanceStore(),
		transactions: memory.NewTransactionStore(),
		feeds:        map[string]*feed.Static{eth: feed.NewStatic(8), usdc: feed.NewStatic(8)},
		clock:        clk,
	}

	source := feed.NewSource().
		Register("eth-usd", h.feeds[eth]).
		Register("usdc-usd", h.feeds[usdc])
	h.setPrice(eth, "2000")
	h.setPrice(usdc, "1")

	var custody core.ICustody = vault.NewCustody(h.balances, treasury)
	var token core.IDebtToken = vault.NewDebtToken(h.balances, debt, treasury)
	for _, opt := range opts {
		custody, token = opt(custody, token)
	}

	policy := core.DefaultPolicy()
	runner := operation.NewRunner(guard.New(), h.ledger, h.transactions, clk, nil)
	h.engine, err = New(
		registry,
		policy,
		runner,
		operation.NewBank(custody, token, treasury),
		oracle.New(registry, source, clk, policy),
		nil,
	)
	require.Nil(t, err)

	return h
}

func (h *harness) setPrice(asset, price string) {
	h.feeds[asset].Set(decimal.RequireFromString(price), h.clock.Now())
}

func (h *harness) fund(t *testing.T, owner, asset, amount string) {
	require.Nil(t, h.balances.Move(context.Background(), asset, "", owner, number.Ether(amount)))
}

func (h *harness) balance(owner, asset string) string {
	v, _ := h.balances.Find(context.Background(), owner, asset)
	return v.Dec()
}

func (h *harness) account(owner string) *core.Account {
	a, _ := h.ledger.FindAccount(context.Background(), owner)
	return a
}

func ether(s string) *uint256.Int {
	return number.Ether(s)
}

func TestDepositAndMintScenario(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.fund(t, "alice", eth, "10")

	require.Nil(t, h.engine.DepositCollateral(ctx, "alice", eth, ether("10")))
	require.Nil(t, h.engine.MintDebt(ctx, "alice", ether("9000")))

	hf, err := h.engine.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "1111111111111111111", hf.Dec())

	require.Nil(t, h.engine.MintDebt(ctx, "alice", ether("1000")))
	hf, _ = h.engine.HealthFactor(ctx, "alice")
	assert.Equal(t, core.MinHealthFactor.Dec(), hf.Dec())

	err = h.engine.MintDebt(ctx, "alice", uint256.NewInt(1))
	assert.ErrorIs(t, err, core.ErrHealthFactorBroken)
	var hfErr *core.HealthFactorError
	require.ErrorAs(t, err, &hfErr)
	assert.Equal(t, "alice", hfErr.Account)

	assert.Equal(t, ether("10000").Dec(), h.account("alice").DebtMinted.Dec())
	assert.Equal(t, ether("10000").Dec(), h.balance("alice", debt))
	assert.Equal(t, ether("10").Dec(), h.balance(treasury, eth))
	assert.Equal(t, "0", h.balance("alice", eth))

	snapshot, err := h.engine.Account(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, ether("20000").Dec(), snapshot.CollateralValue.Dec())
	assert.Equal(t, ether("10").Dec(), snapshot.Collateral[eth].Dec())

	list, _ := h.transactions.ListByAccount(ctx, "alice", time.Time{}, 10)
	assert.Len(t, list, 3)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.fund(t, "alice", eth, "1")

	assert.ErrorIs(t, h.engine.DepositCollateral(ctx, "alice", eth, number.Zero()), core.ErrZeroAmount)
	assert.ErrorIs(t, h.engine.DepositCollateral(ctx, "alice", "doge", ether("1")), core.ErrAssetNotAllowed)
	assert.ErrorIs(t, h.engine.MintDebt(ctx, "alice", nil), core.ErrZeroAmount)
	assert.ErrorIs(t, h.engine.RedeemCollateral(ctx, "alice", eth, ether("1")), core.ErrInsufficientCollateral)
	assert.ErrorIs(t, h.engine.BurnDebt(ctx, "alice", ether("1")), core.ErrInsufficientDebt)
	assert.ErrorIs(t, h.engine.DepositAndMint(ctx, "alice", eth, ether("1"), number.Zero()), core.ErrZeroAmount)
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.fund(t, "alice", eth, "10")

	require.Nil(t, h.engine.DepositAndMint(ctx, "alice", eth, ether("10"), ether("5000")))

	// 5 eth left is 10000 usd, 5000 adjusted against 5000 debt
	require.Nil(t, h.engine.RedeemCollateral(ctx, "alice", eth, ether("5")))
	assert.ErrorIs(t, h.engine.RedeemCollateral(ctx, "alice", eth, uint256.NewInt(1)), core.ErrHealthFactorBroken)
	assert.Equal(t, ether("5").Dec(), h.balance("alice", eth))

	require.Nil(t, h.engine.RedeemAndBurn(ctx, "alice", eth, ether("2"), ether("2000")))
	a := h.account("alice")
	assert.Equal(t, ether("3").Dec(), a.CollateralOf(eth).Dec())
	assert.Equal(t, ether("3000").Dec(), a.DebtMinted.Dec())
	assert.Equal(t, ether("3000").Dec(), h.balance("alice", debt))
	assert.Equal(t, "0", h.balance(treasury, debt))

	require.Nil(t, h.engine.BurnDebt(ctx, "alice", ether("3000")))
	require.Nil(t, h.engine.RedeemCollateral(ctx, "alice", eth, ether("3")))
	a = h.account("alice")
	assert.True(t, a.DebtMinted.IsZero())
	assert.Len(t, a.Collateral, 0)
	assert.Equal(t, ether("10").Dec(), h.balance("alice", eth))
}

func TestFailedTransferLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.fund(t, "alice", eth, "1")

	err := h.engine.DepositCollateral(ctx, "alice", eth, ether("2"))
	assert.ErrorIs(t, err, core.ErrTransferFailed)
	assert.Len(t, h.account("alice").Collateral, 0)

	// burn without holding the tokens
	require.Nil(t, h.engine.DepositAndMint(ctx, "alice", eth, ether("1"), ether("100")))
	require.Nil(t, h.balances.Move(ctx, debt, "alice", "bob", ether("100")))

	err = h.engine.BurnDebt(ctx, "alice", ether("50"))
	assert.ErrorIs(t, err, core.ErrTransferFailed)
	assert.Equal(t, ether("100").Dec(), h.account("alice").DebtMinted.Dec())
}

type failingMint struct {
	*vault.DebtToken
}

func (failingMint) Mint(context.Context, string, *uint256.Int) (bool, error) {
	return false, nil
}

func TestMintFailureRevertsDeposit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, func(custody core.ICustody, token core.IDebtToken) (core.ICustody, core.IDebtToken) {
		return custody, failingMint{token.(*vault.DebtToken)}
	})
	h.fund(t, "alice", eth, "10")

	err := h.engine.DepositAndMint(ctx, "alice", eth, ether("10"), ether("1000"))
	assert.ErrorIs(t, err, core.ErrMintFailed)

	a := h.account("alice")
	assert.Len(t, a.Collateral, 0)
	assert.True(t, a.DebtMinted.IsZero())
	assert.Equal(t, ether("10").Dec(), h.balance("alice", eth))
	assert.Equal(t, "0", h.balance(treasury, eth))

	list, _ := h.transactions.ListByAccount(ctx, "alice", time.Time{}, 10)
	assert.Len(t, list, 0)
}

type reentrantCustody struct {
	core.ICustody
	engine **Engine
	err    error
	// detached calls back with a fresh context, as a callback over the api would
	detached time.Duration
}

func (c *reentrantCustody) TransferIn(ctx context.Context, asset, from string, amount *uint256.Int) (bool, error) {
	if *c.engine == nil {
		return c.ICustody.TransferIn(ctx, asset, from, amount)
	}

	if c.detached > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), c.detached)
		defer cancel()
	}

	c.err = (*c.engine).DepositCollateral(ctx, from, asset, amount)
	if c.err != nil {
		return false, c.err
	}

	return c.ICustody.TransferIn(ctx, asset, from, amount)
}

func TestReentrancyRejected(t *testing.T) {
	ctx := context.Background()
	var engine *Engine
	custody := &reentrantCustody{engine: &engine}

	h := newHarness(t, func(c core.ICustody, token core.IDebtToken) (core.ICustody, core.IDebtToken) {
		custody.ICustody = c
		return custody, token
	})
	engine = h.engine
	h.fund(t, "alice", eth, "10")

	err := h.engine.DepositCollateral(ctx, "alice", eth, ether("1"))
	assert.ErrorIs(t, err, core.ErrReentrantCall)
	assert.ErrorIs(t, custody.err, core.ErrReentrantCall)
	assert.Len(t, h.account("alice").Collateral, 0)
	assert.Equal(t, ether("10").Dec(), h.balance("alice", eth))
}

func TestDetachedCallbackDoesNotDeadlock(t *testing.T) {
	ctx := context.Background()
	var engine *Engine
	custody := &reentrantCustody{engine: &engine, detached: 200 * time.Millisecond}

	h := newHarness(t, func(c core.ICustody, token core.IDebtToken) (core.ICustody, core.IDebtToken) {
		custody.ICustody = c
		return custody, token
	})
	engine = h.engine
	h.fund(t, "alice", eth, "10")

	done := make(chan error, 1)
	go func() {
		done <- h.engine.DepositCollateral(ctx, "alice", eth, ether("1"))
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("outer deposit still blocked after the callback gave up")
	}

	assert.ErrorIs(t, custody.err, context.DeadlineExceeded)
	assert.Len(t, h.account("alice").Collateral, 0)
	assert.Equal(t, ether("10").Dec(), h.balance("alice", eth))

	// guard released, the next deposit goes through
	engine = nil
	require.Nil(t, h.engine.DepositCollateral(ctx, "alice", eth, ether("1")))
	assert.Equal(t, ether("1").Dec(), h.account("alice").CollateralOf(eth).Dec())
}

func TestConcurrentDepositsSerialize(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.fund(t, "alice", eth, "2")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Nil(t, h.engine.DepositCollateral(ctx, "alice", eth, ether("0.1")))
		}()
	}
	wg.Wait()

	assert.Equal(t, ether("2").Dec(), h.account("alice").CollateralOf(eth).Dec())
	assert.Equal(t, "0", h.balance("alice", eth))
}

func TestStalePriceBlocksDebtOperations(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.fund(t, "alice", eth, "10")

	require.Nil(t, h.engine.DepositCollateral(ctx, "alice", eth, ether("5")))
	h.clock.Add(3*time.Hour + time.Second)

	// no debt, no price needed
	require.Nil(t, h.engine.DepositCollateral(ctx, "alice", eth, ether("1")))
	assert.ErrorIs(t, h.engine.MintDebt(ctx, "alice", ether("1")), core.ErrStalePrice)

	h.setPrice(eth, "2000")
	require.Nil(t, h.engine.MintDebt(ctx, "alice", ether("1")))
}

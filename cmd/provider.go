package cmd

import (
	"strings"

	"cdp/core"
	"cdp/internal/metrics"
	"cdp/pkg/guard"
	"cdp/service/engine"
	"cdp/service/feed"
	"cdp/service/operation"
	"cdp/service/oracle"
	"cdp/service/savings"
	"cdp/service/vault"
	"cdp/store/balance"
	"cdp/store/ledger"
	"cdp/store/memory"
	"cdp/store/transaction"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/lib/pq"
)

// stores backing one process, in memory or in the database
type stores struct {
	db           *db.DB
	ledger       core.ILedgerStore
	balances     core.IBalanceStore
	transactions core.ITransactionStore
	property     property.Store
}

// services wired over stores
type services struct {
	stores
	registry *core.AssetRegistry
	tickers  *feed.TickerClient
	symbols  []string
	oracle   core.IPriceOracle
	engine   *engine.Engine
	savings  *savings.Service
	metrics  *metrics.Metrics
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideStores() stores {
	if cfg.App.Memory {
		return stores{
			ledger:       memory.NewLedgerStore(),
			balances:     memory.NewBalanceStore(),
			transactions: memory.NewTransactionStore(),
		}
	}

	database := provideDatabase()
	return stores{
		db:           database,
		ledger:       ledger.New(database),
		balances:     balance.New(database),
		transactions: transaction.New(database),
		property:     propertystore.New(database),
	}
}

// provideFeeds ticker feeds keyed by feed id, the feed id doubles as ticker symbol
func provideFeeds() (*feed.TickerClient, *feed.Source, []string) {
	client := feed.NewTickerClient(cfg.PriceOracle)
	source := feed.NewSource()

	symbols := make([]string, 0, len(cfg.Assets))
	for _, asset := range cfg.Assets {
		symbol := asset.Symbol
		if symbol == "" {
			symbol = asset.Feed
		}

		symbol = strings.ToUpper(symbol)
		source.Register(asset.Feed, client.Feed(symbol))
		symbols = append(symbols, symbol)
	}

	return client, source, symbols
}

func provideServices() *services {
	s := &services{
		stores:  provideStores(),
		metrics: metrics.Default(),
	}

	registry, err := cfg.Registry()
	if err != nil {
		panic(err)
	}
	s.registry = registry

	clk := clock.New()
	tickers, source, symbols := provideFeeds()
	s.tickers, s.symbols = tickers, symbols
	s.oracle = oracle.New(registry, source, clk, cfg.Policy)

	runner := operation.NewRunner(guard.New(), s.ledger, s.transactions, clk, s.metrics)
	bank := operation.NewBank(
		vault.NewCustody(s.balances, cfg.Engine.Address),
		vault.NewDebtToken(s.balances, cfg.Engine.DebtAsset, cfg.Engine.Address),
		cfg.Engine.Address,
	)

	if s.engine, err = engine.New(registry, cfg.Policy, runner, bank, s.oracle, s.metrics); err != nil {
		panic(err)
	}

	if s.savings, err = savings.New(registry, cfg.Policy, runner, bank, s.oracle, s.metrics); err != nil {
		panic(err)
	}

	return s
}

package monitor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cdp/core"
	"cdp/internal/metrics"
	"cdp/service/engine"
	"cdp/service/savings"
	"cdp/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/holiman/uint256"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const checkpointKey = "monitor_checkpoint"

// Report liquidatable positions found by one scan
type Report struct {
	Accounts []string
	Borrows  []string
	Pools    *core.PoolStatus
}

// Monitor scans ledger accounts and borrow positions for broken health factors
type Monitor struct {
	worker.BaseJob
	ledger   core.ILedgerStore
	engine   core.IEngine
	savings  core.ISavingsService
	property property.Store
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New new monitor worker, property may be nil to skip checkpoints
func New(
	location, spec string,
	ledger core.ILedgerStore,
	engine core.IEngine,
	savings core.ISavingsService,
	property property.Store,
	m *metrics.Metrics,
) *Monitor {
	monitor := Monitor{
		ledger:   ledger,
		engine:   engine,
		savings:  savings,
		property: property,
		metrics:  m,
		now:      time.Now,
	}

	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.Local
	}

	monitor.Cron = cron.New(cron.WithLocation(l))
	if _, err := monitor.Cron.AddFunc(spec, monitor.Run); err != nil {
		panic(fmt.Errorf("monitor: bad spec %q: %w", spec, err))
	}

	monitor.OnWork = func() error {
		_, err := monitor.Scan(context.Background())
		return err
	}

	return &monitor
}

// Scan one pass over all positions
func (w *Monitor) Scan(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx).WithField("worker", "monitor")
	ctx = logger.WithContext(ctx, log)

	if w.property != nil {
		v, err := w.property.Get(ctx, checkpointKey)
		if err != nil {
			log.WithError(err).Errorln("property.Get", checkpointKey)
			return nil, err
		}

		log.Debugln("last scan at", v.Time())
	}

	report := &Report{}

	var g errgroup.Group
	g.Go(func() error {
		accounts, err := w.scanAccounts(ctx)
		report.Accounts = accounts
		return err
	})

	g.Go(func() error {
		borrows, err := w.scanBorrows(ctx)
		report.Borrows = borrows
		return err
	})

	g.Go(func() error {
		status, err := w.savings.Status(ctx)
		if err != nil {
			log.WithError(err).Errorln("savings.Status")
			return err
		}

		report.Pools = status
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	w.metrics.SetLiquidatable(engine.LiquidationKindLedger, len(report.Accounts))
	w.metrics.SetLiquidatable(savings.LiquidationKindBorrow, len(report.Borrows))
	w.metrics.SetPools(report.Pools)

	if w.property != nil {
		if err := w.property.Save(ctx, checkpointKey, w.now()); err != nil {
			log.WithError(err).Errorln("property.Save", checkpointKey)
			return nil, err
		}
	}

	return report, nil
}

func (w *Monitor) scanAccounts(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	accounts, err := w.ledger.ListAccounts(ctx)
	if err != nil {
		log.WithError(err).Errorln("ledger.ListAccounts")
		return nil, err
	}

	addresses := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if a.DebtMinted != nil && !a.DebtMinted.IsZero() {
			addresses = append(addresses, a.Address)
		}
	}

	return w.collect(ctx, addresses, w.engine.HealthFactor)
}

func (w *Monitor) scanBorrows(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	positions, err := w.ledger.ListBorrows(ctx)
	if err != nil {
		log.WithError(err).Errorln("ledger.ListBorrows")
		return nil, err
	}

	addresses := make([]string, 0, len(positions))
	for _, p := range positions {
		addresses = append(addresses, p.Address)
	}

	return w.collect(ctx, addresses, w.savings.BorrowHealthFactor)
}

// collect addresses whose health factor is broken. Positions that cannot be
// priced are logged and skipped.
func (w *Monitor) collect(ctx context.Context, addresses []string, healthFactor func(ctx context.Context, address string) (*uint256.Int, error)) ([]string, error) {
	log := logger.FromContext(ctx)

	var (
		mu     sync.Mutex
		broken []string
		g      errgroup.Group
	)

	g.SetLimit(8)
	for _, address := range addresses {
		address := address
		g.Go(func() error {
			hf, err := healthFactor(ctx, address)
			if err != nil {
				log.WithError(err).Warnln("health factor", address)
				return nil
			}

			if hf.Lt(core.MinHealthFactor) {
				log.WithField("health_factor", hf.Dec()).Infoln("liquidatable", address)
				mu.Lock()
				broken = append(broken, address)
				mu.Unlock()
			}

			return nil
		})
	}

	_ = g.Wait()
	sort.Strings(broken)
	return broken, nil
}

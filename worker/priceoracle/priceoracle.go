package priceoracle

import (
	"context"
	"fmt"
	"time"

	"cdp/core"
	"cdp/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// TickerPuller pulls the latest ticker of a symbol
type TickerPuller interface {
	Pull(ctx context.Context, symbol string) (*core.PriceTicker, error)
}

// Worker keeps the ticker cache warm so price reads stay fresh
type Worker struct {
	worker.BaseJob
	puller  TickerPuller
	symbols []string
}

// New new price oracle worker
func New(location, spec string, puller TickerPuller, symbols []string) *Worker {
	job := Worker{
		puller:  puller,
		symbols: symbols,
	}

	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.Local
	}

	job.Cron = cron.New(cron.WithLocation(l))
	if _, err := job.Cron.AddFunc(spec, job.Run); err != nil {
		panic(fmt.Errorf("priceoracle: bad spec %q: %w", spec, err))
	}

	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	if len(w.symbols) == 0 {
		log.Infoln("no symbol to pull")
		return nil
	}

	var g errgroup.Group
	for _, symbol := range w.symbols {
		symbol := symbol
		g.Go(func() error {
			ticker, err := w.puller.Pull(ctx, symbol)
			if err != nil {
				log.WithError(err).Errorln("pull price ticker:", symbol)
				return err
			}

			if ticker.Price.LessThanOrEqual(decimal.Zero) {
				log.Errorln("invalid ticker price:", symbol, ":", ticker.Price)
				return core.ErrStalePrice
			}

			log.Debugln("ticker", symbol, ticker.Price, ticker.Timestamp)
			return nil
		})
	}

	return g.Wait()
}

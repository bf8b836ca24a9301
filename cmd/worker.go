package cmd

import (
	"cdp/worker"
	"cdp/worker/monitor"
	"cdp/worker/priceoracle"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var _flag struct {
	priceSpec   string
	monitorSpec string
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "cdp job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)

		jobs := provideJobs(provideServices())
		startJobs(jobs)
		log.Infoln("jobs started:", len(jobs))

		<-ctx.Done()
		stopJobs(jobs)
		log.Infoln("jobs stopped")
	},
}

func provideJobs(s *services) []worker.IJob {
	return []worker.IJob{
		priceoracle.New(cfg.App.Location, _flag.priceSpec, s.tickers, s.symbols),
		monitor.New(cfg.App.Location, _flag.monitorSpec, s.ledger, s.engine, s.savings, s.property, s.metrics),
	}
}

func startJobs(jobs []worker.IJob) {
	for _, job := range jobs {
		_ = job.Start()
	}
}

func stopJobs(jobs []worker.IJob) {
	for _, job := range jobs {
		_ = job.Stop()
	}
}

func init() {
	rootCmd.AddCommand(workerCmd)

	rootCmd.PersistentFlags().StringVar(&_flag.priceSpec, "price.spec", "@every 30s", "cron spec of the ticker refresh")
	rootCmd.PersistentFlags().StringVar(&_flag.monitorSpec, "monitor.spec", "@every 1m", "cron spec of the health factor scan")
}

package cli

import (
	"context"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"autoblog/api"
	"autoblog/dispatch"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var noCron bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve run status and metrics, running the schedules in-process",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			runner, closeEvents, err := a.pipelineRunner(false)
			if err != nil {
				return err
			}
			defer closeEvents()

			server := api.NewServer(runner, a.store, a.metrics, a.dispatchSlot, a.logger)
			if !noCron {
				if err := server.StartCron(a.cfg.DailySchedule, a.cfg.DispatchSchedules); err != nil {
					return err
				}
			}

			if err := server.Start(a.cfg.ServeAddr); err != nil {
				return err
			}
			<-cmd.Context().Done()

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
	cmd.Flags().BoolVar(&noCron, "no-cron", false, "serve status only, without the in-process schedules")
	return cmd
}

// dispatchSlot is one scheduled X slot: a random delay, then a single
// delivery under the run lock.
func (a *app) dispatchSlot(ctx context.Context) error {
	client, err := dispatch.NewXClient(a.cfg)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if _, err := dispatch.RandomDelay(ctx, a.cfg.DispatchDelayMax, rng); err != nil {
		return err
	}
	d := dispatch.New(a.store, client, a.logger, a.metrics)
	d.Single = true
	return a.locked(func() error {
		_, err := d.ProcessQueue(ctx)
		return err
	})
}

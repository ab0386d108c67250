package cli

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"autoblog/config"
	"autoblog/dispatch"
	"autoblog/types"
)

func newPostXCmd(opts *rootOptions) *cobra.Command {
	var (
		single bool
		delay  bool
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "post-x",
		Short: "Deliver queued posts to X",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			if dryRun {
				return printQueue(cmd.OutOrStdout(), a, types.PlatformX)
			}
			client, err := dispatch.NewXClient(a.cfg)
			if err != nil {
				return err
			}

			if delay {
				rng := rand.New(rand.NewSource(time.Now().UnixNano()))
				a.logger.WithField("max", a.cfg.DispatchDelayMax.String()).Info("Waiting a random delay before dispatch")
				d, err := dispatch.RandomDelay(cmd.Context(), a.cfg.DispatchDelayMax, rng)
				if err != nil {
					return err
				}
				a.logger.WithField("delay", d.String()).Info("Dispatch delay elapsed")
			}
			return runDispatch(cmd, a, client, single)
		},
	}
	cmd.Flags().BoolVar(&single, "single", false, "deliver at most one unit")
	cmd.Flags().BoolVar(&delay, "delay", false, "wait a random number of minutes first")
	cmd.Flags().BoolVar(&dryRun, "test", false, "print the queue without posting")
	return cmd
}

func newPostInstagramCmd(opts *rootOptions) *cobra.Command {
	var (
		single bool
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "post-instagram",
		Short: "Deliver queued captions to Instagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			if dryRun {
				printInstagramCredentials(cmd.OutOrStdout(), a.cfg)
				return printQueue(cmd.OutOrStdout(), a, types.PlatformInstagram)
			}
			client, err := dispatch.NewInstagramClient(a.cfg)
			if err != nil {
				return err
			}
			return runDispatch(cmd, a, client, single)
		},
	}
	cmd.Flags().BoolVar(&single, "single", false, "deliver at most one unit")
	cmd.Flags().BoolVar(&dryRun, "test", false, "print configured credentials and the queue without posting")
	return cmd
}

func runDispatch(cmd *cobra.Command, a *app, p dispatch.Platform, single bool) error {
	d := dispatch.New(a.store, p, a.logger, a.metrics)
	d.Single = single
	return a.locked(func() error {
		report, err := d.ProcessQueue(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "%s delivered=%d poisoned=%d failed=%d pending=%d\n",
			headerStyle.Render(p.Name()), report.Delivered, report.Poisoned, report.Failed, report.Pending)
		return err
	})
}

func printQueue(w io.Writer, a *app, platform string) error {
	entries, err := a.store.ListQueue()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, headerStyle.Render("Queue for "+platform))
	dispatch.PrintQueue(w, entries, platform)
	return nil
}

func printInstagramCredentials(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, headerStyle.Render("Instagram credentials"))
	check := func(name, value string) {
		status := okStyle.Render("set")
		if value == "" {
			status = missStyle.Render("missing")
		}
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(name+":"), status)
	}
	check("INSTAGRAM_ACCESS_TOKEN", cfg.Instagram.AccessToken)
	check("INSTAGRAM_BUSINESS_ACCOUNT_ID", cfg.Instagram.AccountID)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("image url:"), cfg.Instagram.ImageURL)
	fmt.Fprintf(w, "  %s %s\n\n", labelStyle.Render("graph url:"), cfg.Instagram.GraphURL)
}

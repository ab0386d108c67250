package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"autoblog/content"
	"autoblog/dispatch"
	"autoblog/events"
	"autoblog/pipeline"
	"autoblog/site"
	"autoblog/social"
)

func newPipelineCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the full daily pipeline once",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			runner, closeEvents, err := a.pipelineRunner(dryRun)
			if err != nil {
				return err
			}
			defer closeEvents()

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the steps without running them")
	return cmd
}

// pipelineRunner wires the daily steps. The completion provider is checked
// up front unless this is a dry run; platform credentials and the publisher
// are resolved inside their own steps.
func (a *app) pipelineRunner(dryRun bool) (*pipeline.Runner, func(), error) {
	var c pipeline.Components
	if !dryRun {
		completer, err := a.completer()
		if err != nil {
			return nil, nil, err
		}
		c = pipeline.Components{
			Articles: content.NewGenerator(a.store, completer, a.logger),
			Social:   social.NewGenerator(a.store, completer, a.logger),
			DispatchX: func() (pipeline.QueueProcessor, error) {
				client, err := dispatch.NewXClient(a.cfg)
				if err != nil {
					return nil, err
				}
				return dispatch.New(a.store, client, a.logger, a.metrics), nil
			},
			DispatchInstagram: func() (pipeline.QueueProcessor, error) {
				client, err := dispatch.NewInstagramClient(a.cfg)
				if err != nil {
					return nil, err
				}
				return dispatch.New(a.store, client, a.logger, a.metrics), nil
			},
			Builder:   site.NewBuilder(a.cfg.Site.BuildCommand, a.cfg.Root, a.logger),
			Publisher: a.publisher,
			Reflector: a.reflectionEngine(completer),
		}
	}

	publisher, err := events.NewPublisher(a.cfg.Kafka, a.logger)
	if err != nil {
		a.logger.WithError(err).Warn("Pipeline events disabled")
		publisher = events.NoopPublisher{}
	}

	runner := pipeline.NewRunner(a.store, pipeline.DailySteps(c), a.logger)
	runner.Events = publisher
	runner.Metrics = a.metrics
	runner.DryRun = dryRun
	a.logger.AddHook(runner.Status)

	return runner, func() {
		if err := publisher.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close event publisher")
		}
	}, nil
}

func printReport(cmd *cobra.Command, report *pipeline.RunReport) {
	out := cmd.OutOrStdout()
	title := "Pipeline run " + report.RunID
	if report.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(out, headerStyle.Render(title))
	for _, s := range report.Steps {
		status := okStyle.Render(s.Status)
		if s.Status == events.StatusFailed {
			status = missStyle.Render(s.Status)
		}
		line := fmt.Sprintf("  %-24s %s", s.Name, status)
		if s.Error != "" {
			line += " " + labelStyle.Render(s.Error)
		}
		fmt.Fprintln(out, line)
	}
}

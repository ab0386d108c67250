package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"autoblog/llm"
	"autoblog/reflection"
	"autoblog/site"
	"autoblog/trends"
)

func newReflectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reflect",
		Short: "Review recent output and write tomorrow's strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			completer, err := a.completer()
			if err != nil {
				return err
			}
			engine := a.reflectionEngine(completer)
			return a.locked(func() error {
				rec, strategy, err := engine.ReflectAndPlan(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, headerStyle.Render("Reflection "+rec.Date))
				if len(rec.Reflection.GoodPoints) > 0 {
					fmt.Fprintf(out, "%s %s\n", labelStyle.Render("good:"), strings.Join(rec.Reflection.GoodPoints, " / "))
				}
				if len(rec.Reflection.BadPoints) > 0 {
					fmt.Fprintf(out, "%s %s\n", labelStyle.Render("improve:"), strings.Join(rec.Reflection.BadPoints, " / "))
				}
				if pk := strategy.PriorityKeyword(); pk != "" {
					fmt.Fprintf(out, "%s %s\n", labelStyle.Render("priority keyword:"), pk)
				}
				fmt.Fprintf(out, "%s %s\n", labelStyle.Render("summary:"), rec.Summary)
				return nil
			})
		},
	}
}

func (a *app) reflectionEngine(completer llm.Completer) *reflection.Engine {
	fetcher := trends.NewFetcher(a.cfg.TrendFeeds)
	fetcher.ExtractTop = a.cfg.TrendExtractTop
	engine := reflection.NewEngine(a.store, completer, fetcher, a.logger)
	engine.TrendLimit = a.cfg.TrendLimit
	return engine
}

func newBuildCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Rebuild the static site and publish it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			publisher, err := a.publisher(cmd.Context())
			if err != nil {
				return err
			}
			builder := site.NewBuilder(a.cfg.Site.BuildCommand, a.cfg.Root, a.logger)
			return a.locked(func() error {
				if err := builder.Build(cmd.Context()); err != nil {
					return err
				}
				return publisher.Publish(cmd.Context())
			})
		},
	}
}

func (a *app) publisher(ctx context.Context) (site.Publisher, error) {
	return site.NewPublisher(ctx, a.cfg, a.logger)
}

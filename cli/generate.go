package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"autoblog/config"
	"autoblog/content"
	"autoblog/social"
	"autoblog/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newArticleCmd(opts *rootOptions) *cobra.Command {
	var preview bool
	cmd := &cobra.Command{
		Use:   "article",
		Short: "Generate one article from the keyword pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			completer, err := a.completer()
			if err != nil {
				return err
			}
			gen := content.NewGenerator(a.store, completer, a.logger)

			return a.locked(func() error {
				article, err := gen.Generate(cmd.Context())
				if err != nil {
					return err
				}
				if preview {
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, headerStyle.Render(article.Title))
					fmt.Fprintf(out, "%s %s\n\n", labelStyle.Render("keyword:"), article.Keyword)
					fmt.Fprintln(out, article.Preview(config.PreviewLength))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&preview, "test", false, "print a preview of the generated article")
	return cmd
}

func newSNSCmd(opts *rootOptions) *cobra.Command {
	var standalone bool
	cmd := &cobra.Command{
		Use:   "sns",
		Short: "Draft social posts for the latest article and queue them",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			completer, err := a.completer()
			if err != nil {
				return err
			}
			gen := social.NewGenerator(a.store, completer, a.logger)

			return a.locked(func() error {
				var (
					item *types.QueueItem
					name string
				)
				if standalone {
					item, name, err = gen.Standalone(cmd.Context())
				} else {
					item, name, err = gen.FromLatestArticle(cmd.Context())
				}
				if errors.Is(err, social.ErrSkipped) {
					a.logger.Info("No article yet; nothing to share")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", okStyle.Render("queued"), name, item.Type)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&standalone, "standalone", false, "draft a standalone post on an evergreen topic instead")
	return cmd
}

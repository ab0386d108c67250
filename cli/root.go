// Package cli is the autoblog command tree. Each pipeline component can be
// run on its own; `pipeline` runs them all in order.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"autoblog/config"
	"autoblog/store"
)

type rootOptions struct {
	envFile   string
	root      string
	logFormat string
}

// NewRootCmd returns the root command for the autoblog CLI
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "autoblog",
		Short:         "Automated blog and social content pipeline",
		Long:          "autoblog generates articles and social posts, dispatch queued posts, rebuild the site and plan the next day.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "env file to load before reading configuration")
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", "repository root (default: $AUTOBLOG_ROOT or .)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text|json (default: $LOG_FORMAT or text)")

	rootCmd.AddCommand(newArticleCmd(opts))
	rootCmd.AddCommand(newSNSCmd(opts))
	rootCmd.AddCommand(newPostXCmd(opts))
	rootCmd.AddCommand(newPostInstagramCmd(opts))
	rootCmd.AddCommand(newReflectCmd(opts))
	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newPipelineCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newScheduleCmd(opts))

	return rootCmd
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", describe(err))
		return 1
	}
	return 0
}

func describe(err error) string {
	var cfgErr *config.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		return cfgErr.Error() + " (set it in the environment or the env file)"
	case errors.Is(err, store.ErrLocked):
		return "another autoblog run is in progress; try again later"
	default:
		return err.Error()
	}
}

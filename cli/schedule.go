package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"autoblog/scheduler"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the crontab entries for the daily run and dispatch slots",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Register the daily pipeline and dispatch slots",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := opts.registrar()
				if err != nil {
					return err
				}
				if err := r.Install(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Scheduled tasks registered"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove",
			Short: "Remove the registered entries",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := opts.registrar()
				if err != nil {
					return err
				}
				removed, err := r.Remove(cmd.Context())
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Scheduled tasks removed"))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), missStyle.Render("No scheduled tasks registered"))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Show the registered entries",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := opts.registrar()
				if err != nil {
					return err
				}
				block, ok, err := r.Check(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), missStyle.Render("No scheduled tasks registered"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render("Registered tasks"))
				fmt.Fprintln(cmd.OutOrStdout(), block)
				return nil
			},
		},
	)
	return cmd
}

func (o *rootOptions) registrar() (*scheduler.Registrar, error) {
	a, err := o.load()
	if err != nil {
		return nil, err
	}
	binary, err := os.Executable()
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(a.cfg.Root)
	if err != nil {
		return nil, err
	}
	return &scheduler.Registrar{
		Binary:  binary,
		Root:    root,
		Entries: scheduler.Entries(a.cfg),
		Crontab: scheduler.SystemCrontab{},
		Logger:  a.logger,
	}, nil
}

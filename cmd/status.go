package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliodash/folio/internal/output"
)

func newStatusCmd(opts *listOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check backend health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, *opts)
		},
	}
	cmd.SilenceUsage = true
	return cmd
}

func runStatus(cmd *cobra.Command, opts listOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	health, err := opts.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("backend not reachable: %w", err)
	}

	if opts.jsonMode {
		return output.New(cmd.OutOrStdout(), true).Print(health)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Backend: %s (%s)\n", health.Status, health.Time)
	return nil
}

func init() {
	var opts listOptions
	cmd := newStatusCmd(&opts)
	cmd.PreRunE = func(*cobra.Command, []string) error {
		loaded, err := loadListOptions()
		if err != nil {
			return err
		}
		opts = loaded
		return nil
	}
	rootCmd.AddCommand(cmd)
}

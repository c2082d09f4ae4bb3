package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliodash/folio/internal/output"
)

func newSyncCmd(opts *listOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger a backend data sync",
		Long: `Ask the backend to re-sync holdings and prices from its broker.

The backend does the work; this command just reports its message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, *opts)
		},
	}
	cmd.SilenceUsage = true
	return cmd
}

func runSync(cmd *cobra.Command, opts listOptions) error {
	// Syncs can take a while when the broker is slow.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	message, err := opts.client.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if opts.jsonMode {
		return output.New(cmd.OutOrStdout(), true).Print(map[string]string{"message": message})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

func init() {
	var opts listOptions
	cmd := newSyncCmd(&opts)
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

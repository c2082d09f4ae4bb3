package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliodash/folio/internal/output"
	"github.com/foliodash/folio/internal/tui"
)

func newWatchlistCmd(opts *listOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "List watched symbols",
		Long: `List watchlist symbols with their latest prices.

Examples:
  folio watchlist
  folio watchlist --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchlist(cmd, *opts)
		},
	}
	cmd.SilenceUsage = true
	return cmd
}

func runWatchlist(cmd *cobra.Command, opts listOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items, err := opts.client.Watchlist(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch watchlist: %w", err)
	}

	if len(items) == 0 {
		if opts.jsonMode {
			return output.New(cmd.OutOrStdout(), true).Print([]any{})
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Watchlist is empty")
		return nil
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(items)
	}

	headers := []string{"Symbol", "Name", "Last"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Symbol,
			item.Name,
			tui.FormatCurrency(item.LatestPrice),
		})
	}
	return formatter.Table(headers, rows)
}

func init() {
	var opts listOptions
	cmd := newWatchlistCmd(&opts)
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

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliodash/folio/internal/output"
	"github.com/foliodash/folio/internal/tui"
)

func newTradesCmd(opts *listOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List executed trades",
		Long: `List the trade log, newest first.

Examples:
  folio trades
  folio trades --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrades(cmd, *opts)
		},
	}
	cmd.SilenceUsage = true
	return cmd
}

func runTrades(cmd *cobra.Command, opts listOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	trades, err := opts.client.Trades(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch trades: %w", err)
	}

	if len(trades) == 0 {
		if opts.jsonMode {
			return output.New(cmd.OutOrStdout(), true).Print([]any{})
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No trades")
		return nil
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(trades)
	}

	headers := []string{"Ticker", "Name", "Side", "Qty", "Price", "Executed"}
	rows := make([][]string, 0, len(trades))
	for _, tr := range trades {
		rows = append(rows, []string{
			tr.Ticker,
			tr.Name,
			strings.ToUpper(tr.Side),
			tui.FormatQuantity(tr.Quantity),
			tui.FormatCurrency(tr.Price),
			tr.ExecutedAt,
		})
	}
	return formatter.Table(headers, rows)
}

func init() {
	var opts listOptions
	cmd := newTradesCmd(&opts)
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

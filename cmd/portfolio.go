package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliodash/folio/internal/api"
	"github.com/foliodash/folio/internal/config"
	"github.com/foliodash/folio/internal/keyring"
	"github.com/foliodash/folio/internal/output"
	"github.com/foliodash/folio/internal/tui"
)

// listOptions holds dependencies shared by the one-shot list commands.
type listOptions struct {
	client   *api.Client
	jsonMode bool
}

// loadListOptions builds production dependencies from config and keyring.
func loadListOptions() (listOptions, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return listOptions{}, fmt.Errorf("failed to load config: %w", err)
	}
	store := keyring.NewEnvStore(keyring.NewSystemStore())
	return listOptions{
		client:   api.NewClient(cfg.APIBaseURL, keyring.APIToken(store)),
		jsonMode: GetJSONMode(),
	}, nil
}

func newPortfolioCmd(opts *listOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "List current holdings",
		Long: `List current holdings with cost basis, market value, and gain/loss.

Examples:
  folio portfolio
  folio portfolio --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPortfolio(cmd, *opts)
		},
	}
	cmd.SilenceUsage = true
	return cmd
}

func runPortfolio(cmd *cobra.Command, opts listOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	holdings, err := opts.client.Portfolio(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch portfolio: %w", err)
	}

	if len(holdings) == 0 {
		if opts.jsonMode {
			return output.New(cmd.OutOrStdout(), true).Print([]any{})
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No holdings")
		return nil
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(holdings)
	}

	headers := []string{"Ticker", "Name", "Qty", "Avg Cost", "Price", "Value", "Gain", "Change"}
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, []string{
			h.Ticker,
			h.Name,
			tui.FormatQuantity(h.Quantity),
			tui.FormatCurrency(h.AvgBuyPrice),
			tui.FormatCurrency(h.CurrentPrice),
			tui.FormatCurrency(h.MarketValue),
			tui.FormatSignedCurrency(h.UnrealizedGainLoss),
			tui.FormatSignedPercent(h.PercentChange),
		})
	}
	return formatter.Table(headers, rows)
}

func init() {
	var opts listOptions
	cmd := newPortfolioCmd(&opts)
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

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliodash/folio/internal/chart"
	"github.com/foliodash/folio/internal/config"
	"github.com/foliodash/folio/internal/output"
	"github.com/foliodash/folio/internal/tui"
)

func newHistoryCmd(opts *listOptions) *cobra.Command {
	var span, interval string
	var maxPoints int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the portfolio value series",
		Long: `Show a summary of the portfolio value over a span.

Spans and intervals match the dashboard timeframes, e.g. day/5minute,
week/hour, month/day, year/week, all/week.

Examples:
  folio history
  folio history --span year --interval week
  folio history --span day --interval 5minute --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, *opts, span, interval, maxPoints)
		},
	}

	cmd.Flags().StringVar(&span, "span", "month", "History span (day, week, month, 3month, year, all)")
	cmd.Flags().StringVar(&interval, "interval", "day", "Sample interval (5minute, hour, day, week)")
	cmd.Flags().IntVar(&maxPoints, "points", config.DefaultHistoryMaxPoints, "Maximum number of samples")
	cmd.SilenceUsage = true
	return cmd
}

func runHistory(cmd *cobra.Command, opts listOptions, span, interval string, maxPoints int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	points, err := opts.client.History(ctx, span, interval, maxPoints)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	if opts.jsonMode {
		return output.New(cmd.OutOrStdout(), true).Print(points)
	}

	series := chart.BuildSeries(points)
	if series.Empty() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No history data")
		return nil
	}

	first := series.Points[0]
	last := series.Points[len(series.Points)-1]
	metrics := series.Latest()
	min, max := series.MinMax()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Span: %s (%s), %d samples\n", span, interval, len(series.Points))
	_, _ = fmt.Fprintf(out, "From: %s  %s\n", first.Time.Format("2006-01-02 15:04"), tui.FormatCurrency(first.Value))
	_, _ = fmt.Fprintf(out, "To:   %s  %s\n", last.Time.Format("2006-01-02 15:04"), tui.FormatCurrency(last.Value))
	_, _ = fmt.Fprintf(out, "Change: %s (%s)\n", tui.FormatSignedCurrency(metrics.Change), tui.FormatSignedPercent(metrics.ChangePct))
	_, _ = fmt.Fprintf(out, "Low: %s  High: %s\n", tui.FormatCurrency(min), tui.FormatCurrency(max))
	return nil
}

func init() {
	var opts listOptions
	cmd := newHistoryCmd(&opts)
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

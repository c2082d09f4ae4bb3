package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/foliodash/folio/internal/api"
	"github.com/foliodash/folio/internal/cache"
	"github.com/foliodash/folio/internal/config"
	"github.com/foliodash/folio/internal/keyring"
	"github.com/foliodash/folio/internal/logging"
	"github.com/foliodash/folio/internal/tui"
)

func init() {
	var logLevel string

	dashboardCmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Interactive portfolio dashboard",
		Long: `Launch the full-screen portfolio dashboard.

Views:
  Overview:  profile card, value chart, and allocation breakdown
  Portfolio: holdings with gain/loss, searchable and paginated
  Trades:    trade log
  Watchlist: watched symbols with latest prices

All views keep refreshing in the background while the dashboard runs.

Keyboard shortcuts:
  1-4     Switch between views
  /       Search the active table
  ←/→     Pages, or inspect chart points on the overview
  [/]     Switch chart timeframe
  ↑/↓     Move the allocation selection
  p       Flip the profile card
  r       Refresh the active view
  S       Trigger a backend sync
  q       Quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.ConfigPath())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store := keyring.NewEnvStore(keyring.NewSystemStore())
			client := api.NewClient(cfg.APIBaseURL, keyring.APIToken(store))

			// The TUI owns stdout, so diagnostics go to a log file.
			logger, closeLog := logging.NewFileLogger(config.LogPath(), logLevel)
			defer closeLog()

			model := tui.New(cfg, client, cache.NewStore(config.CacheDir()), logger)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	dashboardCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level for the debug log (debug, info, warn, error)")
	dashboardCmd.SilenceUsage = true
	rootCmd.AddCommand(dashboardCmd)
}

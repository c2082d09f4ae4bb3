package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/foliodash/folio/internal/api"
	"github.com/foliodash/folio/internal/config"
	"github.com/foliodash/folio/internal/keyring"
)

// passwordReader abstracts terminal password input for testing.
type passwordReader interface {
	ReadPassword() (string, error)
	IsTerminal() bool
}

// terminalReader reads passwords from the terminal using golang.org/x/term.
type terminalReader struct {
	fd int
}

func newTerminalReader(fd int) *terminalReader {
	return &terminalReader{fd: fd}
}

func (r *terminalReader) ReadPassword() (string, error) {
	password, err := term.ReadPassword(r.fd)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func (r *terminalReader) IsTerminal() bool {
	return term.IsTerminal(r.fd)
}

// lineReader abstracts plain line input for testing.
type lineReader interface {
	ReadLine(prompt string) (string, error)
}

type terminalLineReader struct {
	reader io.Reader
	writer io.Writer
}

func newTerminalLineReader(r io.Reader, w io.Writer) *terminalLineReader {
	return &terminalLineReader{reader: r, writer: w}
}

func (p *terminalLineReader) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.writer, prompt)
	scanner := bufio.NewScanner(p.reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// configureOptions holds dependencies for the configure command.
// This allows for dependency injection in tests.
type configureOptions struct {
	configPath     string
	store          keyring.Store
	passwordReader passwordReader
	prompt         lineReader
}

// newConfigureCmd creates the configure command with the given options.
func newConfigureCmd(opts configureOptions) *cobra.Command {
	var flagBaseURL string
	var flagSkipToken bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure backend URL and API token",
		Long: `Configure the CLI with your portfolio backend URL and, for hosted
deployments, a bearer token. The token is stored in the system keyring.

Example:
  folio configure
  folio configure --url https://folio.example.com
  folio configure --no-token`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts, flagBaseURL, flagSkipToken)
		},
	}

	cmd.Flags().StringVar(&flagBaseURL, "url", "", "Backend base URL")
	cmd.Flags().BoolVar(&flagSkipToken, "no-token", false, "Skip token entry (open localhost backend)")
	cmd.SilenceUsage = true

	return cmd
}

func runConfigure(cmd *cobra.Command, opts configureOptions, baseURL string, skipToken bool) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		cfg = config.Default()
	}

	if baseURL == "" {
		baseURL, err = opts.prompt.ReadLine(fmt.Sprintf("Backend URL [%s]: ", cfg.APIBaseURL))
		if err != nil {
			return fmt.Errorf("failed to read URL: %w", err)
		}
	}
	if baseURL != "" {
		cfg.APIBaseURL = strings.TrimSuffix(baseURL, "/")
	}

	token := ""
	if !skipToken {
		if !opts.passwordReader.IsTerminal() {
			return fmt.Errorf("configure requires an interactive terminal\nRun this command directly in your terminal (not piped or in a script)")
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "API token (empty for none): ")
		token, err = opts.passwordReader.ReadPassword()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	// Validate against the backend before persisting anything.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(cfg.APIBaseURL, token)
	if _, err := client.Health(ctx); err != nil {
		return fmt.Errorf("backend not reachable at %s: %w", cfg.APIBaseURL, err)
	}

	if token != "" {
		if err := opts.store.Set(keyring.ServiceName, keyring.KeyAPIToken, token); err != nil {
			return fmt.Errorf("failed to store token in keyring: %w", err)
		}
	}

	if err := config.Save(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved successfully!")
	return nil
}

func init() {
	configureCmd := newConfigureCmd(configureOptions{
		configPath:     config.ConfigPath(),
		store:          keyring.NewEnvStore(keyring.NewSystemStore()),
		passwordReader: newTerminalReader(int(os.Stdin.Fd())),
		prompt:         newTerminalLineReader(os.Stdin, os.Stdout),
	})
	rootCmd.AddCommand(configureCmd)
}

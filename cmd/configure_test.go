package cmd

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliodash/folio/internal/config"
	"github.com/foliodash/folio/internal/keyring"
)

// mockPasswordReader returns a canned password.
type mockPasswordReader struct {
	password string
	terminal bool
}

func (m *mockPasswordReader) ReadPassword() (string, error) { return m.password, nil }
func (m *mockPasswordReader) IsTerminal() bool              { return m.terminal }

// mockLineReader returns a canned line.
type mockLineReader struct {
	line string
}

func (m *mockLineReader) ReadLine(string) (string, error) { return m.line, nil }

func TestConfigure_SavesURLAndToken(t *testing.T) {
	server := httptest.NewServer(jsonHandler(t, map[string]string{
		"/": `{"status": "ok", "time": "2026-08-30T12:00:00Z"}`,
	}))
	defer server.Close()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	store := keyring.NewMockStore()

	cmd := newConfigureCmd(configureOptions{
		configPath:     configPath,
		store:          store,
		passwordReader: &mockPasswordReader{password: "secret-token", terminal: true},
		prompt:         &mockLineReader{line: server.URL},
	})

	out, err := execute(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "saved successfully")

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, server.URL, cfg.APIBaseURL)

	token, err := store.Get(keyring.ServiceName, keyring.KeyAPIToken)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)
}

func TestConfigure_NoTokenSkipsKeyring(t *testing.T) {
	server := httptest.NewServer(jsonHandler(t, map[string]string{
		"/": `{"status": "ok", "time": "2026-08-30T12:00:00Z"}`,
	}))
	defer server.Close()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	store := keyring.NewMockStore()

	cmd := newConfigureCmd(configureOptions{
		configPath:     configPath,
		store:          store,
		passwordReader: &mockPasswordReader{terminal: false},
		prompt:         &mockLineReader{line: server.URL},
	})

	_, err := execute(t, cmd, "--no-token")
	require.NoError(t, err)

	_, err = store.Get(keyring.ServiceName, keyring.KeyAPIToken)
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestConfigure_RequiresTerminalForToken(t *testing.T) {
	cmd := newConfigureCmd(configureOptions{
		configPath:     filepath.Join(t.TempDir(), "config.yaml"),
		store:          keyring.NewMockStore(),
		passwordReader: &mockPasswordReader{terminal: false},
		prompt:         &mockLineReader{},
	})

	_, err := execute(t, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestConfigure_RejectsUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(jsonHandler(t, nil))
	server.Close()

	cmd := newConfigureCmd(configureOptions{
		configPath:     filepath.Join(t.TempDir(), "config.yaml"),
		store:          keyring.NewMockStore(),
		passwordReader: &mockPasswordReader{password: "tok", terminal: true},
		prompt:         &mockLineReader{line: server.URL},
	})

	_, err := execute(t, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/portfolio/sync", r.URL.Path)
		_, _ = w.Write([]byte(`{"message": "synced 12 holdings"}`))
	}))
	defer server.Close()

	opts := testListOptions(server, false)
	out, err := execute(t, newSyncCmd(&opts))
	require.NoError(t, err)
	assert.Contains(t, out, "synced 12 holdings")
}

func TestSyncCmd_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": "broker unavailable"}`))
	}))
	defer server.Close()

	opts := testListOptions(server, false)
	_, err := execute(t, newSyncCmd(&opts))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

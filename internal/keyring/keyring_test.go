package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStore(t *testing.T) {
	store := NewMockStore()

	_, err := store.Get(ServiceName, KeyAPIToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ServiceName, KeyAPIToken, "tok-123"))
	val, err := store.Get(ServiceName, KeyAPIToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", val)

	require.NoError(t, store.Delete(ServiceName, KeyAPIToken))
	_, err = store.Get(ServiceName, KeyAPIToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnvStore_EnvOverride(t *testing.T) {
	t.Setenv(EnvAPIToken, "env-token")

	store := NewEnvStore(NewMockStore())
	val, err := store.Get(ServiceName, KeyAPIToken)
	require.NoError(t, err)
	assert.Equal(t, "env-token", val)
}

func TestEnvStore_FallsThrough(t *testing.T) {
	t.Setenv(EnvAPIToken, "")

	inner := NewMockStore()
	require.NoError(t, inner.Set(ServiceName, KeyAPIToken, "stored-token"))

	store := NewEnvStore(inner)
	val, err := store.Get(ServiceName, KeyAPIToken)
	require.NoError(t, err)
	assert.Equal(t, "stored-token", val)
}

func TestAPIToken_MissingIsEmpty(t *testing.T) {
	assert.Equal(t, "", APIToken(NewMockStore()))
}

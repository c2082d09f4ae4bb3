package keyring

import "sync"

// MockStore implements Store in memory for tests.
type MockStore struct {
	mu      sync.Mutex
	secrets map[string]string
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{secrets: make(map[string]string)}
}

func (m *MockStore) key(service, key string) string {
	return service + "/" + key
}

// Get retrieves a secret from the mock store.
func (m *MockStore) Get(service, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.secrets[m.key(service, key)]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

// Set stores a secret in the mock store.
func (m *MockStore) Set(service, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[m.key(service, key)] = value
	return nil
}

// Delete removes a secret from the mock store.
func (m *MockStore) Delete(service, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.secrets, m.key(service, key))
	return nil
}

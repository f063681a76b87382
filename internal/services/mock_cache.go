package services

import (
	"context"
	"sync"
	"time"
)

// MockCache is a mock implementation of Cache for testing.
// Unless a Func is set it behaves like an in-memory cache.
type MockCache struct {
	PingFunc   func(ctx context.Context) error
	SetFunc    func(ctx context.Context, key string, value string, expiration time.Duration) error
	GetFunc    func(ctx context.Context, key string) (string, error)
	DelFunc    func(ctx context.Context, keys ...string) error
	ExistsFunc func(ctx context.Context, keys ...string) (bool, error)
	CloseFunc  func() error

	// Track calls for testing
	PingCalls   int
	SetCalls    []SetCall
	GetCalls    []string
	DelCalls    [][]string
	ExistsCalls [][]string
	CloseCalls  int

	data map[string]string
	mu   sync.Mutex // protects all fields above
}

type SetCall struct {
	Key        string
	Value      string
	Expiration time.Duration
}

// NewMockCache creates a new mock cache
func NewMockCache() *MockCache {
	return &MockCache{
		SetCalls:    make([]SetCall, 0),
		GetCalls:    make([]string, 0),
		DelCalls:    make([][]string, 0),
		ExistsCalls: make([][]string, 0),
		data:        make(map[string]string),
	}
}

// Ping mocks cache ping
func (m *MockCache) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PingCalls++
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// Set mocks cache set
func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, SetCall{
		Key:        key,
		Value:      value,
		Expiration: expiration,
	})

	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}

	m.data[key] = value
	return nil
}

// Get mocks cache get
func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, key)

	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return m.data[key], nil
}

// Del mocks cache delete
func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DelCalls = append(m.DelCalls, keys)

	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// Exists mocks cache exists check
func (m *MockCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExistsCalls = append(m.ExistsCalls, keys)

	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, keys...)
	}
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			return true, nil
		}
	}
	return false, nil
}

// Close mocks cache close
func (m *MockCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// SetGetError sets up the mock to fail every Get
func (m *MockCache) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetFunc = func(ctx context.Context, key string) (string, error) {
		return "", err
	}
}

// SetSetError sets up the mock to fail every Set
func (m *MockCache) SetSetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetFunc = func(ctx context.Context, key string, value string, expiration time.Duration) error {
		return err
	}
}

// Put seeds a value without recording a call
func (m *MockCache) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Ensure MockCache implements Cache interface
var _ Cache = (*MockCache)(nil)

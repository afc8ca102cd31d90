package testutil

import (
	"context"
	"sync"
)

// MemoryTokens is an in-memory token store.
type MemoryTokens struct {
	mu    sync.Mutex
	token string

	// Error injection for testing
	GetErr   error
	SetErr   error
	ClearErr error
}

// NewMemoryTokens returns a store holding token ("" for none).
func NewMemoryTokens(token string) *MemoryTokens {
	return &MemoryTokens{token: token}
}

func (m *MemoryTokens) Get(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.token, nil
}

func (m *MemoryTokens) Set(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.token = token
	return nil
}

func (m *MemoryTokens) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	return nil
}

// Token returns the current token without error injection.
func (m *MemoryTokens) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

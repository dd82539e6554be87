// Package mocks provides mock implementations for testing transaction-aware code.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a TxManager test double that executes the function inline
// without opening a real transaction. Call tracking is available through the
// embedded mock for tests that need to assert WithTx usage.
type MockTxManager struct {
	mock.Mock
}

// NewMockTxManager creates a new MockTxManager bound to the test lifecycle.
func NewMockTxManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTxManager {
	m := &MockTxManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithTx executes fn with the unmodified context. Rollback semantics are not
// simulated; the caller's error is returned as-is.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"choubo/internal/port"
)

// MockCompletionProvider is a mock implementation of port.CompletionProvider.
type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockCompletionProvider) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CompletionResult), args.Error(1)
}

// MockLocalProvider is a mock implementation of llm.LocalProvider.
type MockLocalProvider struct {
	MockCompletionProvider
}

func (m *MockLocalProvider) Reachable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// MockRemoteProvider is a mock implementation of llm.RemoteProvider.
type MockRemoteProvider struct {
	MockCompletionProvider
}

func (m *MockRemoteProvider) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

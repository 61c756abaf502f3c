package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"choubo/internal/port"
)

// MockCompletionGateway is a mock implementation of interpreter.CompletionGateway.
type MockCompletionGateway struct {
	mock.Mock
}

func (m *MockCompletionGateway) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CompletionResult), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"choubo/internal/interpreter"
)

// MockDocumentInterpreter is a mock implementation of service.DocumentInterpreter.
type MockDocumentInterpreter struct {
	mock.Mock
}

func (m *MockDocumentInterpreter) Interpret(ctx context.Context, req interpreter.Request) (*interpreter.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interpreter.Result), args.Error(1)
}

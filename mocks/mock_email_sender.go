package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"choubo/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReviewNotification(ctx context.Context, toEmail string, doc *domain.InterpretedDocument) error {
	args := m.Called(ctx, toEmail, doc)
	return args.Error(0)
}

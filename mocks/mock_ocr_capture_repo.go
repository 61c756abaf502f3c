package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"choubo/internal/domain"
)

// MockOCRCaptureRepo is a mock implementation of port.OCRCaptureRepository.
type MockOCRCaptureRepo struct {
	mock.Mock
}

func (m *MockOCRCaptureRepo) Create(ctx context.Context, capture *domain.OCRCapture) error {
	args := m.Called(ctx, capture)
	return args.Error(0)
}

func (m *MockOCRCaptureRepo) GetByID(ctx context.Context, companyID string, captureID uuid.UUID) (*domain.OCRCapture, error) {
	args := m.Called(ctx, companyID, captureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OCRCapture), args.Error(1)
}

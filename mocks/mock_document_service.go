package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"choubo/internal/domain"
	"choubo/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Interpret(ctx context.Context, input *service.InterpretInput) (*domain.InterpretedDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterpretedDocument), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, companyID string, docID uuid.UUID) (*domain.InterpretedDocument, error) {
	args := m.Called(ctx, companyID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterpretedDocument), args.Error(1)
}

func (m *MockDocumentService) ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]domain.InterpretedDocument, int, error) {
	args := m.Called(ctx, companyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InterpretedDocument), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) ListAllByCompany(ctx context.Context, companyID string) ([]domain.InterpretedDocument, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterpretedDocument), args.Error(1)
}

func (m *MockDocumentService) UpdateStructuredData(ctx context.Context, companyID string, docID uuid.UUID, structured *domain.StructuredDocument) (*domain.InterpretedDocument, error) {
	args := m.Called(ctx, companyID, docID, structured)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterpretedDocument), args.Error(1)
}

func (m *MockDocumentService) GetImageURL(ctx context.Context, companyID string, docID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID, docID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, companyID string, docID uuid.UUID) error {
	args := m.Called(ctx, companyID, docID)
	return args.Error(0)
}

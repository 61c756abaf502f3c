package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"choubo/internal/domain"
)

// MockDocumentRepo is a mock implementation of port.InterpretedDocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.InterpretedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, companyID string, docID uuid.UUID) (*domain.InterpretedDocument, error) {
	args := m.Called(ctx, companyID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterpretedDocument), args.Error(1)
}

func (m *MockDocumentRepo) ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]domain.InterpretedDocument, int, error) {
	args := m.Called(ctx, companyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InterpretedDocument), args.Int(1), args.Error(2)
}

func (m *MockDocumentRepo) ListAllByCompany(ctx context.Context, companyID string) ([]domain.InterpretedDocument, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterpretedDocument), args.Error(1)
}

func (m *MockDocumentRepo) UpdateStructuredData(ctx context.Context, doc *domain.InterpretedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) UpdateSourceImageKey(ctx context.Context, companyID string, docID uuid.UUID, key string) error {
	args := m.Called(ctx, companyID, docID, key)
	return args.Error(0)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, companyID string, docID uuid.UUID) error {
	args := m.Called(ctx, companyID, docID)
	return args.Error(0)
}

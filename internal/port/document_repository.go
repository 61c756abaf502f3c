package port

import (
	"context"

	"github.com/google/uuid"

	"choubo/internal/domain"
)

// InterpretedDocumentRepository defines the contract for interpreted document persistence.
// All query methods include companyID to enforce company isolation at the data layer.
type InterpretedDocumentRepository interface {
	Create(ctx context.Context, doc *domain.InterpretedDocument) error
	GetByID(ctx context.Context, companyID string, docID uuid.UUID) (*domain.InterpretedDocument, error)
	ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]domain.InterpretedDocument, int, error)
	ListAllByCompany(ctx context.Context, companyID string) ([]domain.InterpretedDocument, error)
	UpdateStructuredData(ctx context.Context, doc *domain.InterpretedDocument) error
	UpdateSourceImageKey(ctx context.Context, companyID string, docID uuid.UUID, key string) error
	Delete(ctx context.Context, companyID string, docID uuid.UUID) error
}

// OCRCaptureRepository persists raw OCR payloads so interpretations can be
// audited and re-run against the original capture.
type OCRCaptureRepository interface {
	Create(ctx context.Context, capture *domain.OCRCapture) error
	GetByID(ctx context.Context, companyID string, captureID uuid.UUID) (*domain.OCRCapture, error)
}

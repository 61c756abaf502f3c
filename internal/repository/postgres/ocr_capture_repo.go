package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"choubo/internal/domain"
	"choubo/internal/port"
)

type ocrCaptureRepo struct {
	db *sqlx.DB
}

// NewOCRCaptureRepo creates a new PostgreSQL-backed OCRCaptureRepository.
func NewOCRCaptureRepo(db *sqlx.DB) port.OCRCaptureRepository {
	return &ocrCaptureRepo{db: db}
}

func (r *ocrCaptureRepo) Create(ctx context.Context, capture *domain.OCRCapture) error {
	capture.CreatedAt = time.Now().UTC()

	query := `INSERT INTO ocr_captures (id, company_id, payload, created_at)
	VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		capture.ID, capture.CompanyID, capture.Payload, capture.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ocrCaptureRepo.Create: %w", err)
	}
	return nil
}

func (r *ocrCaptureRepo) GetByID(ctx context.Context, companyID string, captureID uuid.UUID) (*domain.OCRCapture, error) {
	var capture domain.OCRCapture
	query := `SELECT * FROM ocr_captures WHERE id = $1 AND company_id = $2`

	err := r.db.GetContext(ctx, &capture, query, captureID, companyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ocrCaptureRepo.GetByID: %w", err)
	}
	return &capture, nil
}

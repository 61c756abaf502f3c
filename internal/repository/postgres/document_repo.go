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

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed InterpretedDocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.InterpretedDocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.InterpretedDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO interpreted_documents (
		id, company_id, ocr_capture_id, document_type, structured_data,
		confidence, model_used, vendor_name, customer_name, total_amount,
		source_image_key, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10,
		$11, $12, $13
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.CompanyID, doc.OCRCaptureID, doc.DocumentType, doc.StructuredData,
		doc.Confidence, doc.ModelUsed, doc.VendorName, doc.CustomerName, doc.TotalAmount,
		doc.SourceImageKey, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, companyID string, docID uuid.UUID) (*domain.InterpretedDocument, error) {
	var doc domain.InterpretedDocument
	query := `SELECT * FROM interpreted_documents WHERE id = $1 AND company_id = $2`

	err := r.db.GetContext(ctx, &doc, query, docID, companyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]domain.InterpretedDocument, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM interpreted_documents WHERE company_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, companyID); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByCompany count: %w", err)
	}

	docs := []domain.InterpretedDocument{}
	query := `SELECT * FROM interpreted_documents
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &docs, query, companyID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByCompany: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) ListAllByCompany(ctx context.Context, companyID string) ([]domain.InterpretedDocument, error) {
	docs := []domain.InterpretedDocument{}
	query := `SELECT * FROM interpreted_documents
		WHERE company_id = $1
		ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &docs, query, companyID); err != nil {
		return nil, fmt.Errorf("documentRepo.ListAllByCompany: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) UpdateStructuredData(ctx context.Context, doc *domain.InterpretedDocument) error {
	doc.UpdatedAt = time.Now().UTC()

	query := `UPDATE interpreted_documents SET
		structured_data = $1, confidence = $2, model_used = $3,
		vendor_name = $4, customer_name = $5, total_amount = $6,
		updated_at = $7
	WHERE id = $8 AND company_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		doc.StructuredData, doc.Confidence, doc.ModelUsed,
		doc.VendorName, doc.CustomerName, doc.TotalAmount,
		doc.UpdatedAt, doc.ID, doc.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStructuredData: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStructuredData rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentRepo) UpdateSourceImageKey(ctx context.Context, companyID string, docID uuid.UUID, key string) error {
	query := `UPDATE interpreted_documents SET source_image_key = $1, updated_at = $2
	WHERE id = $3 AND company_id = $4`

	result, err := r.db.ExecContext(ctx, query, key, time.Now().UTC(), docID, companyID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateSourceImageKey: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateSourceImageKey rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, companyID string, docID uuid.UUID) error {
	query := `DELETE FROM interpreted_documents WHERE id = $1 AND company_id = $2`

	result, err := r.db.ExecContext(ctx, query, docID, companyID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

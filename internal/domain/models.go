package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OCRCapture archives the raw OCR payload exactly as received so an
// interpretation can be replayed or audited later.
type OCRCapture struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	CompanyID string          `db:"company_id" json:"company_id"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// InterpretedDocument is the persisted result of one interpretation run.
// VendorName, CustomerName and TotalAmount are denormalized from the
// structured data for listing and export queries.
type InterpretedDocument struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	CompanyID      string          `db:"company_id" json:"company_id"`
	OCRCaptureID   *uuid.UUID      `db:"ocr_capture_id" json:"ocr_capture_id"`
	DocumentType   DocumentType    `db:"document_type" json:"document_type"`
	StructuredData json.RawMessage `db:"structured_data" json:"structured_data"`
	Confidence     Confidence      `db:"confidence" json:"confidence"`
	ModelUsed      string          `db:"model_used" json:"model_used"`
	VendorName     string          `db:"vendor_name" json:"vendor_name"`
	CustomerName   string          `db:"customer_name" json:"customer_name"`
	TotalAmount    float64         `db:"total_amount" json:"total_amount"`
	SourceImageKey string          `db:"source_image_key" json:"source_image_key"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Structured decodes the stored structured data.
func (d *InterpretedDocument) Structured() (*StructuredDocument, error) {
	var doc StructuredDocument
	if err := json.Unmarshal(d.StructuredData, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

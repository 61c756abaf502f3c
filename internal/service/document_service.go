package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"choubo/internal/domain"
	"choubo/internal/interpreter"
	"choubo/internal/port"
)

// InterpretInput is the DTO for one interpretation request.
type InterpretInput struct {
	CompanyID    string
	DocumentType domain.DocumentType
	Raw          *domain.RawDocument
	RawPayload   json.RawMessage
	ImageData    []byte
	ImageMIME    string
}

// DocumentInterpreter runs the OCR interpretation pipeline.
type DocumentInterpreter interface {
	Interpret(ctx context.Context, req interpreter.Request) (*interpreter.Result, error)
}

// DocumentService defines the interpreted-document management contract.
type DocumentService interface {
	Interpret(ctx context.Context, input *InterpretInput) (*domain.InterpretedDocument, error)
	GetByID(ctx context.Context, companyID string, docID uuid.UUID) (*domain.InterpretedDocument, error)
	ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]domain.InterpretedDocument, int, error)
	ListAllByCompany(ctx context.Context, companyID string) ([]domain.InterpretedDocument, error)
	UpdateStructuredData(ctx context.Context, companyID string, docID uuid.UUID, structured *domain.StructuredDocument) (*domain.InterpretedDocument, error)
	GetImageURL(ctx context.Context, companyID string, docID uuid.UUID) (string, error)
	Delete(ctx context.Context, companyID string, docID uuid.UUID) error
}

type documentService struct {
	docRepo       port.InterpretedDocumentRepository
	captureRepo   port.OCRCaptureRepository
	interp        DocumentInterpreter
	storage       port.ObjectStorage
	email         port.EmailSender
	bucket        string
	presignExpiry int64
	reviewAddress string
}

// NewDocumentService creates a new DocumentService implementation. storage
// and email may be nil; image archival and review notifications are then
// skipped.
func NewDocumentService(
	docRepo port.InterpretedDocumentRepository,
	captureRepo port.OCRCaptureRepository,
	interp DocumentInterpreter,
	storage port.ObjectStorage,
	email port.EmailSender,
	bucket string,
	presignExpirySecs int64,
	reviewAddress string,
) DocumentService {
	return &documentService{
		docRepo:       docRepo,
		captureRepo:   captureRepo,
		interp:        interp,
		storage:       storage,
		email:         email,
		bucket:        bucket,
		presignExpiry: presignExpirySecs,
		reviewAddress: reviewAddress,
	}
}

func (s *documentService) Interpret(ctx context.Context, input *InterpretInput) (*domain.InterpretedDocument, error) {
	captureID := s.archiveCapture(ctx, input)

	result, err := s.interp.Interpret(ctx, interpreter.Request{
		Raw:          input.Raw,
		DocumentType: input.DocumentType,
		CompanyID:    input.CompanyID,
		ImageData:    input.ImageData,
		ImageMIME:    input.ImageMIME,
	})
	if err != nil {
		return nil, err
	}

	structured, err := json.Marshal(result.Document)
	if err != nil {
		return nil, fmt.Errorf("documentService.Interpret: marshaling structured data: %w", err)
	}

	doc := &domain.InterpretedDocument{
		ID:             uuid.New(),
		CompanyID:      input.CompanyID,
		OCRCaptureID:   captureID,
		DocumentType:   input.DocumentType,
		StructuredData: structured,
		Confidence:     result.Document.Confidence,
		ModelUsed:      result.ModelUsed,
		VendorName:     result.Document.Vendor.Name,
		CustomerName:   result.Document.Customer.Name,
		TotalAmount:    result.Document.TotalAmount,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("documentService.Interpret: %w", err)
	}

	log.Printf("documentService.Interpret: document %s interpreted via %s (confidence %s)",
		doc.ID, result.Provider, doc.Confidence)

	s.archiveImage(ctx, doc, input)
	s.notifyReview(ctx, doc)

	return doc, nil
}

// archiveCapture stores the raw OCR payload for audit. Failures are logged
// and never block interpretation.
func (s *documentService) archiveCapture(ctx context.Context, input *InterpretInput) *uuid.UUID {
	if s.captureRepo == nil {
		return nil
	}

	payload := input.RawPayload
	if len(payload) == 0 {
		marshaled, err := json.Marshal(input.Raw)
		if err != nil {
			log.Printf("documentService.archiveCapture: marshaling payload: %v", err)
			return nil
		}
		payload = marshaled
	}

	capture := &domain.OCRCapture{
		ID:        uuid.New(),
		CompanyID: input.CompanyID,
		Payload:   payload,
	}
	if err := s.captureRepo.Create(ctx, capture); err != nil {
		log.Printf("documentService.archiveCapture: %v", err)
		return nil
	}
	return &capture.ID
}

// archiveImage uploads the scanned source image, if supplied, and records
// its key on the document. Failures are logged and never block the result.
func (s *documentService) archiveImage(ctx context.Context, doc *domain.InterpretedDocument, input *InterpretInput) {
	if s.storage == nil || len(input.ImageData) == 0 {
		return
	}

	contentType := input.ImageMIME
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := fmt.Sprintf("companies/%s/ocr-images/%s", doc.CompanyID, doc.ID)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(input.ImageData),
		ContentType: contentType,
		Size:        int64(len(input.ImageData)),
	})
	if err != nil {
		log.Printf("documentService.archiveImage: upload failed for %s: %v", doc.ID, err)
		return
	}

	if err := s.docRepo.UpdateSourceImageKey(ctx, doc.CompanyID, doc.ID, key); err != nil {
		log.Printf("documentService.archiveImage: saving key for %s: %v", doc.ID, err)
		return
	}
	doc.SourceImageKey = key
}

// notifyReview emails the configured reviewer when a document came out of
// the heuristic fallback path.
func (s *documentService) notifyReview(ctx context.Context, doc *domain.InterpretedDocument) {
	if s.email == nil || s.reviewAddress == "" || doc.Confidence != domain.ConfidenceHeuristicFallback {
		return
	}
	if err := s.email.SendReviewNotification(ctx, s.reviewAddress, doc); err != nil {
		log.Printf("documentService.notifyReview: notification for %s failed: %v", doc.ID, err)
	}
}

func (s *documentService) GetByID(ctx context.Context, companyID string, docID uuid.UUID) (*domain.InterpretedDocument, error) {
	return s.docRepo.GetByID(ctx, companyID, docID)
}

func (s *documentService) ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]domain.InterpretedDocument, int, error) {
	return s.docRepo.ListByCompany(ctx, companyID, offset, limit)
}

func (s *documentService) ListAllByCompany(ctx context.Context, companyID string) ([]domain.InterpretedDocument, error) {
	return s.docRepo.ListAllByCompany(ctx, companyID)
}

// UpdateStructuredData replaces a document's structured data with a manual
// correction. Confidence and model are preserved; the denormalized columns
// are refreshed from the corrected data.
func (s *documentService) UpdateStructuredData(ctx context.Context, companyID string, docID uuid.UUID, structured *domain.StructuredDocument) (*domain.InterpretedDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, companyID, docID)
	if err != nil {
		return nil, err
	}

	structured.Confidence = doc.Confidence
	data, err := json.Marshal(structured)
	if err != nil {
		return nil, fmt.Errorf("documentService.UpdateStructuredData: marshaling structured data: %w", err)
	}

	doc.StructuredData = data
	doc.VendorName = structured.Vendor.Name
	doc.CustomerName = structured.Customer.Name
	doc.TotalAmount = structured.TotalAmount

	if err := s.docRepo.UpdateStructuredData(ctx, doc); err != nil {
		return nil, fmt.Errorf("documentService.UpdateStructuredData: %w", err)
	}

	log.Printf("documentService.UpdateStructuredData: document %s corrected", doc.ID)
	return doc, nil
}

func (s *documentService) GetImageURL(ctx context.Context, companyID string, docID uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, companyID, docID)
	if err != nil {
		return "", err
	}
	if doc.SourceImageKey == "" {
		return "", domain.ErrNotFound
	}
	url, err := s.storage.GetPresignedURL(ctx, s.bucket, doc.SourceImageKey, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("documentService.GetImageURL: %w", err)
	}
	return url, nil
}

func (s *documentService) Delete(ctx context.Context, companyID string, docID uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, companyID, docID)
	if err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, companyID, docID); err != nil {
		return err
	}
	if s.storage != nil && doc.SourceImageKey != "" {
		if err := s.storage.Delete(ctx, s.bucket, doc.SourceImageKey); err != nil {
			log.Printf("documentService.Delete: removing image for %s: %v", docID, err)
		}
	}
	return nil
}

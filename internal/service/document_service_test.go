package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"choubo/internal/domain"
	"choubo/internal/interpreter"
	"choubo/internal/llm"
	"choubo/internal/port"
	"choubo/internal/service"
	"choubo/mocks"
)

const (
	testBucket   = "choubo-test"
	testExpiry   = int64(900)
	testReviewer = "review@example.com"
)

func rawDoc() *domain.RawDocument {
	return &domain.RawDocument{
		Pages: []domain.RawPage{{
			PageNumber: 1,
			Lines:      []domain.RawLine{{Content: "合同会社アソウタイセイプリンティング"}},
		}},
	}
}

func llmResult() *interpreter.Result {
	return &interpreter.Result{
		Document: &domain.StructuredDocument{
			Vendor:      domain.Party{Name: "合同会社アソウタイセイプリンティング"},
			Customer:    domain.Party{Name: "株式会社CROP"},
			TotalAmount: 5500,
			Items:       []domain.LineItem{{ItemName: "商品", Quantity: 1, UnitPrice: 5500, Amount: 5500}},
			Confidence:  domain.ConfidenceLLM,
		},
		Provider:  "local",
		ModelUsed: "qwen2.5:7b",
	}
}

func newService(docRepo port.InterpretedDocumentRepository, captureRepo port.OCRCaptureRepository, interp service.DocumentInterpreter, storage port.ObjectStorage, email port.EmailSender) service.DocumentService {
	return service.NewDocumentService(docRepo, captureRepo, interp, storage, email, testBucket, testExpiry, testReviewer)
}

func TestInterpret_PersistsDenormalizedFields(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	captureRepo := new(mocks.MockOCRCaptureRepo)
	interp := new(mocks.MockDocumentInterpreter)
	email := new(mocks.MockEmailSender)

	captureRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	interp.On("Interpret", mock.Anything, mock.Anything).Return(llmResult(), nil)
	docRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.InterpretedDocument) bool {
		return d.VendorName == "合同会社アソウタイセイプリンティング" &&
			d.CustomerName == "株式会社CROP" &&
			d.TotalAmount == 5500 &&
			d.Confidence == domain.ConfidenceLLM &&
			d.OCRCaptureID != nil
	})).Return(nil)

	svc := newService(docRepo, captureRepo, interp, nil, email)
	doc, err := svc.Interpret(context.Background(), &service.InterpretInput{
		CompanyID:    "company-1",
		DocumentType: domain.DocumentTypeInvoice,
		Raw:          rawDoc(),
	})

	require.NoError(t, err)
	assert.Equal(t, "qwen2.5:7b", doc.ModelUsed)
	docRepo.AssertExpectations(t)
	captureRepo.AssertExpectations(t)
	// High-confidence results never notify the reviewer.
	email.AssertNotCalled(t, "SendReviewNotification", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStructuredData_RefreshesDenormalizedFields(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)

	docID := uuid.New()
	existing := &domain.InterpretedDocument{
		ID:           docID,
		CompanyID:    "company-1",
		DocumentType: domain.DocumentTypeInvoice,
		Confidence:   domain.ConfidenceHeuristicFallback,
		VendorName:   "old vendor",
		TotalAmount:  100,
	}
	docRepo.On("GetByID", mock.Anything, "company-1", docID).Return(existing, nil)
	docRepo.On("UpdateStructuredData", mock.Anything, mock.MatchedBy(func(d *domain.InterpretedDocument) bool {
		return d.VendorName == "訂正後ベンダー" &&
			d.TotalAmount == 9900 &&
			d.Confidence == domain.ConfidenceHeuristicFallback
	})).Return(nil)

	svc := newService(docRepo, nil, nil, nil, nil)
	doc, err := svc.UpdateStructuredData(context.Background(), "company-1", docID, &domain.StructuredDocument{
		Vendor:      domain.Party{Name: "訂正後ベンダー"},
		Customer:    domain.Party{Name: "株式会社CROP"},
		TotalAmount: 9900,
	})

	require.NoError(t, err)
	assert.Equal(t, "訂正後ベンダー", doc.VendorName)
	// The correction keeps the original confidence in the stored data.
	assert.Contains(t, string(doc.StructuredData), string(domain.ConfidenceHeuristicFallback))
	docRepo.AssertExpectations(t)
}

func TestUpdateStructuredData_NotFound(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)

	docID := uuid.New()
	docRepo.On("GetByID", mock.Anything, "company-1", docID).Return(nil, domain.ErrNotFound)

	svc := newService(docRepo, nil, nil, nil, nil)
	_, err := svc.UpdateStructuredData(context.Background(), "company-1", docID, &domain.StructuredDocument{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	docRepo.AssertNotCalled(t, "UpdateStructuredData", mock.Anything, mock.Anything)
}

func TestInterpret_FallbackConfidenceNotifiesReviewer(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	captureRepo := new(mocks.MockOCRCaptureRepo)
	interp := new(mocks.MockDocumentInterpreter)
	email := new(mocks.MockEmailSender)

	result := llmResult()
	result.Document.Confidence = domain.ConfidenceHeuristicFallback
	result.Provider = "heuristic"
	result.ModelUsed = ""

	captureRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	interp.On("Interpret", mock.Anything, mock.Anything).Return(result, nil)
	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	email.On("SendReviewNotification", mock.Anything, testReviewer, mock.Anything).Return(nil)

	svc := newService(docRepo, captureRepo, interp, nil, email)
	doc, err := svc.Interpret(context.Background(), &service.InterpretInput{
		CompanyID:    "company-1",
		DocumentType: domain.DocumentTypeReceipt,
		Raw:          rawDoc(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ConfidenceHeuristicFallback, doc.Confidence)
	email.AssertExpectations(t)
}

func TestInterpret_ImageArchivedWithKey(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	captureRepo := new(mocks.MockOCRCaptureRepo)
	interp := new(mocks.MockDocumentInterpreter)
	storage := new(mocks.MockObjectStorage)

	captureRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	interp.On("Interpret", mock.Anything, mock.Anything).Return(llmResult(), nil)
	docRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == testBucket && in.ContentType == "image/png" && in.Size == 4
	})).Return(&port.UploadOutput{Location: "https://example/obj"}, nil)
	docRepo.On("UpdateSourceImageKey", mock.Anything, "company-1", mock.Anything, mock.Anything).Return(nil)

	svc := newService(docRepo, captureRepo, interp, storage, nil)
	doc, err := svc.Interpret(context.Background(), &service.InterpretInput{
		CompanyID:    "company-1",
		DocumentType: domain.DocumentTypeReceipt,
		Raw:          rawDoc(),
		ImageData:    []byte{1, 2, 3, 4},
		ImageMIME:    "image/png",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, doc.SourceImageKey)
	storage.AssertExpectations(t)
	docRepo.AssertExpectations(t)
}

func TestInterpret_CaptureFailureDoesNotBlock(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	captureRepo := new(mocks.MockOCRCaptureRepo)
	interp := new(mocks.MockDocumentInterpreter)

	captureRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	interp.On("Interpret", mock.Anything, mock.Anything).Return(llmResult(), nil)
	docRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.InterpretedDocument) bool {
		return d.OCRCaptureID == nil
	})).Return(nil)

	svc := newService(docRepo, captureRepo, interp, nil, nil)
	_, err := svc.Interpret(context.Background(), &service.InterpretInput{
		CompanyID:    "company-1",
		DocumentType: domain.DocumentTypeInvoice,
		Raw:          rawDoc(),
	})

	require.NoError(t, err)
	docRepo.AssertExpectations(t)
}

func TestInterpret_NoProviderPropagates(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	captureRepo := new(mocks.MockOCRCaptureRepo)
	interp := new(mocks.MockDocumentInterpreter)

	captureRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	interp.On("Interpret", mock.Anything, mock.Anything).Return(nil, llm.ErrNoProvider)

	svc := newService(docRepo, captureRepo, interp, nil, nil)
	_, err := svc.Interpret(context.Background(), &service.InterpretInput{
		CompanyID:    "company-1",
		DocumentType: domain.DocumentTypeInvoice,
		Raw:          rawDoc(),
	})

	assert.ErrorIs(t, err, llm.ErrNoProvider)
	docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetImageURL(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	docID := uuid.New()

	docRepo.On("GetByID", mock.Anything, "company-1", docID).Return(&domain.InterpretedDocument{
		ID:             docID,
		CompanyID:      "company-1",
		SourceImageKey: "companies/company-1/ocr-images/" + docID.String(),
	}, nil)
	storage.On("GetPresignedURL", mock.Anything, testBucket, mock.Anything, testExpiry).
		Return("https://example/presigned", nil)

	svc := newService(docRepo, nil, nil, storage, nil)
	url, err := svc.GetImageURL(context.Background(), "company-1", docID)

	require.NoError(t, err)
	assert.Equal(t, "https://example/presigned", url)
}

func TestGetImageURL_NoImage(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	docID := uuid.New()

	docRepo.On("GetByID", mock.Anything, "company-1", docID).Return(&domain.InterpretedDocument{
		ID:        docID,
		CompanyID: "company-1",
	}, nil)

	svc := newService(docRepo, nil, nil, new(mocks.MockObjectStorage), nil)
	_, err := svc.GetImageURL(context.Background(), "company-1", docID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RemovesArchivedImage(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	storage := new(mocks.MockObjectStorage)
	docID := uuid.New()
	key := "companies/company-1/ocr-images/" + docID.String()

	docRepo.On("GetByID", mock.Anything, "company-1", docID).Return(&domain.InterpretedDocument{
		ID:             docID,
		CompanyID:      "company-1",
		SourceImageKey: key,
	}, nil)
	docRepo.On("Delete", mock.Anything, "company-1", docID).Return(nil)
	storage.On("Delete", mock.Anything, testBucket, key).Return(nil)

	svc := newService(docRepo, nil, nil, storage, nil)
	err := svc.Delete(context.Background(), "company-1", docID)

	require.NoError(t, err)
	storage.AssertExpectations(t)
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"choubo/internal/domain"
	"choubo/internal/handler"
	"choubo/internal/llm"
	"choubo/internal/middleware"
	"choubo/internal/service"
	"choubo/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAuthContext(c *gin.Context, companyID string) {
	c.Set(middleware.ContextKeyCompanyID, companyID)
}

func postInterpret(t *testing.T, h *handler.InterpretHandler, companyID string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/interpret", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	if companyID != "" {
		setAuthContext(c, companyID)
	}

	h.Interpret(c)
	return w
}

func ocrPayload() map[string]any {
	return map[string]any{
		"content": "請求書 合計 ¥3,300",
		"pages": []map[string]any{
			{"pageNumber": 1, "lines": []map[string]any{{"content": "請求書 合計 ¥3,300"}}},
		},
	}
}

func TestInterpret_Success(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewInterpretHandler(docSvc)

	doc := &domain.InterpretedDocument{
		ID:           uuid.New(),
		CompanyID:    "company-1",
		DocumentType: domain.DocumentTypeInvoice,
		Confidence:   domain.ConfidenceLLM,
		TotalAmount:  3300,
	}

	docSvc.On("Interpret", mock.Anything, mock.MatchedBy(func(in *service.InterpretInput) bool {
		return in.CompanyID == "company-1" &&
			in.DocumentType == domain.DocumentTypeInvoice &&
			in.Raw != nil && len(in.Raw.Pages) == 1
	})).Return(doc, nil)

	w := postInterpret(t, h, "company-1", map[string]any{
		"ocrResult":    ocrPayload(),
		"documentType": "invoice",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool                       `json:"success"`
		Data    domain.InterpretedDocument `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, doc.ID, resp.Data.ID)
	assert.Equal(t, float64(3300), resp.Data.TotalAmount)
	docSvc.AssertExpectations(t)
}

func TestInterpret_MissingAuthContext(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewInterpretHandler(docSvc)

	w := postInterpret(t, h, "", map[string]any{
		"ocrResult":    ocrPayload(),
		"documentType": "invoice",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	docSvc.AssertNotCalled(t, "Interpret", mock.Anything, mock.Anything)
}

func TestInterpret_CompanyMismatch(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewInterpretHandler(docSvc)

	w := postInterpret(t, h, "company-1", map[string]any{
		"ocrResult":    ocrPayload(),
		"documentType": "invoice",
		"companyId":    "company-2",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
	docSvc.AssertNotCalled(t, "Interpret", mock.Anything, mock.Anything)
}

func TestInterpret_EmptyOCRResult(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewInterpretHandler(docSvc)

	w := postInterpret(t, h, "company-1", map[string]any{
		"ocrResult":    map[string]any{"content": "", "pages": []any{}},
		"documentType": "invoice",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_OCR_RESULT")
}

func TestInterpret_MissingDocumentType(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewInterpretHandler(docSvc)

	w := postInterpret(t, h, "company-1", map[string]any{
		"ocrResult": ocrPayload(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestInterpret_InvalidDocumentType(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewInterpretHandler(docSvc)

	docSvc.On("Interpret", mock.Anything, mock.Anything).
		Return(nil, domain.ErrInvalidDocumentType)

	w := postInterpret(t, h, "company-1", map[string]any{
		"ocrResult":    ocrPayload(),
		"documentType": "bank-statement",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_DOCUMENT_TYPE")
}

func TestInterpret_InvalidBase64Image(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewInterpretHandler(docSvc)

	w := postInterpret(t, h, "company-1", map[string]any{
		"ocrResult":    ocrPayload(),
		"documentType": "invoice",
		"imageData":    "not%%%base64",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	docSvc.AssertNotCalled(t, "Interpret", mock.Anything, mock.Anything)
}

func TestInterpret_NoProvider(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewInterpretHandler(docSvc)

	docSvc.On("Interpret", mock.Anything, mock.Anything).
		Return(nil, llm.ErrNoProvider)

	w := postInterpret(t, h, "company-1", map[string]any{
		"ocrResult":    ocrPayload(),
		"documentType": "invoice",
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "NO_PROVIDER")
}

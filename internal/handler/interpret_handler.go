package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"choubo/internal/domain"
	"choubo/internal/service"
)

// InterpretHandler handles OCR interpretation requests.
type InterpretHandler struct {
	documentService service.DocumentService
}

// NewInterpretHandler creates a new InterpretHandler.
func NewInterpretHandler(documentService service.DocumentService) *InterpretHandler {
	return &InterpretHandler{documentService: documentService}
}

// Interpret handles POST /api/v1/interpret
// @Summary Interpret an OCR result
// @Description Run the interpretation pipeline over a raw OCR payload and persist the structured result
// @Tags interpret
// @Accept json
// @Produce json
// @Param request body InterpretRequest true "OCR payload and document type"
// @Success 201 {object} Response{data=domain.InterpretedDocument} "Interpreted document"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 503 {object} ErrorResponseBody "No completion provider configured"
// @Security BearerAuth
// @Router /interpret [post]
func (h *InterpretHandler) Interpret(c *gin.Context) {
	companyID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		OCRResult    json.RawMessage `json:"ocrResult" binding:"required"`
		DocumentType string          `json:"documentType" binding:"required"`
		CompanyID    string          `json:"companyId"`
		ImageData    string          `json:"imageData"`
		ImageMIME    string          `json:"imageMime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "ocrResult and documentType are required")
		return
	}

	// The token's company claim is authoritative; a mismatched body value
	// is rejected rather than silently overridden.
	if req.CompanyID != "" && req.CompanyID != companyID {
		RespondError(c, http.StatusForbidden, "FORBIDDEN", "companyId does not match the authenticated company")
		return
	}

	var raw domain.RawDocument
	if err := json.Unmarshal(req.OCRResult, &raw); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "ocrResult is not a valid OCR payload")
		return
	}
	if raw.Content == "" && len(raw.Pages) == 0 {
		HandleError(c, domain.ErrEmptyOCRResult)
		return
	}

	var imageData []byte
	if req.ImageData != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageData)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "imageData is not valid base64")
			return
		}
		imageData = decoded
	}

	doc, err := h.documentService.Interpret(c.Request.Context(), &service.InterpretInput{
		CompanyID:    companyID,
		DocumentType: domain.DocumentType(req.DocumentType),
		Raw:          &raw,
		RawPayload:   req.OCRResult,
		ImageData:    imageData,
		ImageMIME:    req.ImageMIME,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

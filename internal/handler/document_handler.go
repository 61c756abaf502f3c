package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"choubo/internal/csvexport"
	"choubo/internal/domain"
	"choubo/internal/report"
	"choubo/internal/service"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// DocumentHandler handles interpreted-document retrieval and export endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// List handles GET /api/v1/documents
// @Summary List interpreted documents
// @Description List interpreted documents for the authenticated company, newest first
// @Tags documents
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size (max 200)" default(50)
// @Success 200 {object} Response{data=[]domain.InterpretedDocument} "Documents"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	companyID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	docs, total, err := h.documentService.ListByCompany(c.Request.Context(), companyID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get an interpreted document
// @Description Fetch one interpreted document including its structured data
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.InterpretedDocument} "Document"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	companyID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), companyID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// GetImageURL handles GET /api/v1/documents/:id/image
// @Summary Get the archived source image
// @Description Return a presigned URL for the scanned image archived with the document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=ImageURLResponse} "Presigned URL"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document or image not found"
// @Security BearerAuth
// @Router /documents/{id}/image [get]
func (h *DocumentHandler) GetImageURL(c *gin.Context) {
	companyID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	url, err := h.documentService.GetImageURL(c.Request.Context(), companyID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ImageURLResponse{URL: url})
}

// Update handles PUT /api/v1/documents/:id
// @Summary Correct an interpreted document
// @Description Replace a document's structured data with a manually reviewed correction
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body domain.StructuredDocument true "Corrected structured data"
// @Success 200 {object} Response{data=domain.InterpretedDocument} "Updated document"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	companyID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var structured domain.StructuredDocument
	if err := c.ShouldBindJSON(&structured); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body is not a valid structured document")
		return
	}

	doc, err := h.documentService.UpdateStructuredData(c.Request.Context(), companyID, docID, &structured)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete an interpreted document
// @Description Delete a document and its archived source image
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	companyID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), companyID, docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "document deleted"})
}

// ExportCSV handles GET /api/v1/documents/export/csv
// @Summary Export documents as CSV
// @Description Download all interpreted documents for the company as a CSV file
// @Tags documents
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents/export/csv [get]
func (h *DocumentHandler) ExportCSV(c *gin.Context) {
	companyID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docs, err := h.documentService.ListAllByCompany(c.Request.Context(), companyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(companyID)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	// BOM first so Excel opens the file as UTF-8.
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteDocuments(docs); err != nil {
		return
	}
	w.Flush()
}

// ExportXLSX handles GET /api/v1/documents/export/xlsx
// @Summary Export documents as XLSX
// @Description Download all interpreted documents for the company as an Excel workbook
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string "XLSX file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents/export/xlsx [get]
func (h *DocumentHandler) ExportXLSX(c *gin.Context) {
	companyID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docs, err := h.documentService.ListAllByCompany(c.Request.Context(), companyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	f, err := report.BuildWorkbook(docs)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	filename := report.BuildFilename(companyID)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	_ = f.Write(c.Writer)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return offset, limit
}

package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// InterpretRequest represents the interpretation request body.
type InterpretRequest struct {
	OCRResult    interface{} `json:"ocrResult" binding:"required"`
	DocumentType string      `json:"documentType" binding:"required" example:"supplier-quote"`
	CompanyID    string      `json:"companyId" example:"company-1"`
	ImageData    string      `json:"imageData" example:"iVBORw0KGgoAAAANSUhEUg..."`
	ImageMIME    string      `json:"imageMime" example:"image/png"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// ImageURLResponse represents a presigned image URL response.
type ImageURLResponse struct {
	URL string `json:"url" example:"https://s3.amazonaws.com/choubo-uploads/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrEmptyOCRResult      = errors.New("ocr result contains no pages")
)

package noop

import (
	"context"
	"log"

	"choubo/internal/domain"
	"choubo/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewNotification(_ context.Context, toEmail string, doc *domain.InterpretedDocument) error {
	log.Printf("[NOOP EMAIL] Review notification for %s: document %s (%s, vendor %s, total %.0f)",
		toEmail, doc.ID, doc.DocumentType, doc.VendorName, doc.TotalAmount)
	return nil
}

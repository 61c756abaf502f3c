package port

import (
	"context"

	"choubo/internal/domain"
)

// EmailSender defines the contract for sending operator notifications.
type EmailSender interface {
	// SendReviewNotification notifies a reviewer that a document was
	// interpreted with degraded confidence and needs a manual check.
	SendReviewNotification(ctx context.Context, toEmail string, doc *domain.InterpretedDocument) error
}

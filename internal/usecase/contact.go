package usecase

import (
	"context"
	"strings"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/mailer"
	"portfolio-backend/pkg/validation"
)

// ContactMailer is the outbound email collaborator. It is treated as
// opaque: the usecase only branches on success/error.
type ContactMailer interface {
	IsConfigured() bool
	SendContactEmail(ctx context.Context, data mailer.ContactEmailData) (string, error)
}

type contactUsecase struct {
	mailer ContactMailer
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(m ContactMailer) domain.ContactUsecase {
	return &contactUsecase{mailer: m}
}

// SendContactMessage validates the contact request and dispatches the email.
// Order is load-bearing: field validation first, then the configuration
// check, so malformed requests always get 400 before 503.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	// Re-validate defensively; binding already checked, but the usecase is
	// also reachable without the HTTP layer.
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return apperror.BadRequest("Name, email, and message are required")
	}
	if !validation.ValidEmail(email) {
		return apperror.BadRequest("Invalid email address")
	}

	if !uc.mailer.IsConfigured() {
		return apperror.Unavailable("Email service is not configured")
	}

	id, err := uc.mailer.SendContactEmail(ctx, mailer.ContactEmailData{
		SenderName:  name,
		SenderEmail: email,
		Subject:     strings.TrimSpace(req.Subject),
		Message:     req.Message,
	})
	if err != nil {
		// Provider internals stay server-side; the client sees a generic 500.
		return apperror.Internal("Failed to send email", err)
	}

	logger.Log.Info("contact email dispatched", "message_id", id)
	return nil
}

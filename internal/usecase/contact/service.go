package contact

import (
	"context"

	"accessmap/internal/logger"
	"accessmap/internal/mailer"
	appErrors "accessmap/pkg/errors"
	"accessmap/pkg/utils"

	"go.uber.org/zap"
)

// ContactRequest is a message from the public contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Service relays contact form submissions to the site operators.
type Service struct {
	mail mailer.Mailer
}

// NewService creates a new contact service
func NewService(mail mailer.Mailer) *Service {
	return &Service{mail: mail}
}

// Send validates the form and forwards it by email. The sender's address
// goes into Reply-To so operators can answer directly.
func (s *Service) Send(ctx context.Context, req *ContactRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Missing required fields", err)
	}

	name := utils.SanitizeString(req.Name)
	email := utils.SanitizeEmail(req.Email)
	message := utils.SanitizeText(req.Message)

	if err := s.mail.SendContactMessage(ctx, name, email, message); err != nil {
		logger.Error("Failed to relay contact message", zap.Error(err))
		return appErrors.NewAppError("MAIL_ERROR", "Failed to send message", err)
	}

	logger.Info("Contact message relayed",
		zap.String("from", email),
		zap.String("event", "contact_message"),
	)

	return nil
}

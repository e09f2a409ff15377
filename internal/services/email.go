package services

import (
	"context"
	"fmt"
	"log"

	"agoraun/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcomeMessage sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Welcome email sent to %s", data.Email)
	return nil
}

// SendEventCancelled sends the cancellation notice using the "event_cancelled" template.
func (s *emailService) SendEventCancelled(ctx context.Context, data *domain.EventCancelledEmailData) error {
	if data == nil {
		return fmt.Errorf("event cancelled data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_cancelled", data)
	if err != nil {
		return fmt.Errorf("failed to render event_cancelled template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event cancelled email: %w", err)
	}
	log.Printf("[EMAIL] Event cancelled email sent to %s", data.Email)
	return nil
}

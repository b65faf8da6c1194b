package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ofertemutare/ofertemutare/internal/metrics"
	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client       *resend.Client
	fromEmail    string
	supportEmail string
	isDev        bool
	appURL       string
	appName      string
}

func NewEmailService(apiKey, fromEmail, supportEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:       client,
		fromEmail:    fromEmail,
		supportEmail: supportEmail,
		isDev:        isDev,
		appURL:       appURL,
		appName:      appName,
	}
}

// SendUploadLinkEmail sends the customer the link for uploading photos and
// videos of the items to be moved.
func (s *EmailService) SendUploadLinkEmail(ctx context.Context, email, name, uploadLink string, expiresAt time.Time) error {
	subject, body := uploadLinkEmailTemplate(name, uploadLink, expiresAt, s.appName)
	return s.send(ctx, "upload_link", email, subject, body, "url", uploadLink)
}

// SendRequestReceivedEmail confirms a new moving request to its customer.
func (s *EmailService) SendRequestReceivedEmail(ctx context.Context, req *model.MovingRequest) error {
	requestURL := fmt.Sprintf("%s/cererile-mele/%s", s.appURL, req.ID)
	subject, body := requestReceivedEmailTemplate(req.CustomerName, req.FromCity, req.ToCity, requestURL, s.appName)
	return s.send(ctx, "request_received", req.CustomerEmail, subject, body, "request_id", req.ID)
}

func (s *EmailService) send(ctx context.Context, kind, to, subject, body string, logAttrs ...any) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", append([]any{"type", kind, "to", to, "subject", subject}, logAttrs...)...)
		metrics.EmailsSentTotal.WithLabelValues(kind, "dev").Inc()
		return nil
	}

	if s.client == nil {
		metrics.EmailsSentTotal.WithLabelValues(kind, "failure").Inc()
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
		ReplyTo: s.supportEmail,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues(kind, "failure").Inc()
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	metrics.EmailsSentTotal.WithLabelValues(kind, "success").Inc()
	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

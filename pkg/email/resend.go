package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/resendlabs/resend-go"
	"github.com/sefazor/meetapp-backend/internal/config"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// sendFunc delivers a rendered message and returns the provider message id.
type sendFunc func(params *resend.SendEmailRequest) (string, error)

type EmailService struct {
	send      sendFunc
	from      string
	fromName  string
	logger    *zap.Logger
	mu        sync.Mutex
	templates map[string]*template.Template
}

func NewEmailService(cfg config.MailConfig, logger *zap.Logger) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)

	return newEmailService(func(params *resend.SendEmailRequest) (string, error) {
		resp, err := client.Emails.Send(params)
		if err != nil {
			return "", err
		}
		return resp.Id, nil
	}, cfg, logger)
}

func newEmailService(send sendFunc, cfg config.MailConfig, logger *zap.Logger) *EmailService {
	return &EmailService{
		send:      send,
		from:      cfg.FromAddress,
		fromName:  cfg.FromName,
		logger:    logger.Named("email"),
		templates: make(map[string]*template.Template),
	}
}

// Send renders templateName with data and delivers it to a single recipient.
// to may carry a display name, as in "Name <addr>".
func (s *EmailService) Send(ctx context.Context, to, subject, templateName string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	html, err := s.Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	id, err := s.send(params)
	if err != nil {
		s.logger.Error("failed to send email",
			zap.String("template", templateName),
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("send %s: %w", templateName, err)
	}

	s.logger.Info("email sent",
		zap.String("template", templateName),
		zap.String("to", to),
		zap.String("id", id),
	)
	return nil
}

// Render executes an embedded template. Parsed templates are cached.
func (s *EmailService) Render(templateName string, data any) (string, error) {
	tmpl, err := s.lookup(templateName)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		s.logger.Error("failed to execute template", zap.String("template", templateName), zap.Error(err))
		return "", fmt.Errorf("execute template %s: %w", templateName, err)
	}

	return body.String(), nil
}

func (s *EmailService) lookup(templateName string) (*template.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tmpl, ok := s.templates[templateName]; ok {
		return tmpl, nil
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/"+templateName)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", templateName, err)
	}
	s.templates[templateName] = tmpl
	return tmpl, nil
}

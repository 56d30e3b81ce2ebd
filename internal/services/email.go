package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/dimitrije/flowdesk-api/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var ErrEmailNotConfigured = errors.New("email transport is not configured")

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer delivers a single message. Implementations: SMTPMailer, SESMailer, LogMailer.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type EmailService struct {
	mailer Mailer
}

func NewEmailService(mailer Mailer) *EmailService {
	return &EmailService{mailer: mailer}
}

// NewMailer picks the transport named by EMAIL_TRANSPORT.
func NewMailer(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (Mailer, error) {
	switch cfg.EmailTransport {
	case config.EmailTransportSMTP:
		return NewSMTPMailer(cfg.SMTP), nil
	case config.EmailTransportSES:
		return NewSESMailer(ctx, cfg.SES)
	case config.EmailTransportLog:
		return NewLogMailer(log), nil
	}
	return nil, fmt.Errorf("unknown email transport %q", cfg.EmailTransport)
}

func (s *EmailService) Send(ctx context.Context, to, subject, body string) error {
	return s.mailer.Send(ctx, Message{To: to, Subject: subject, HTMLBody: body})
}

type Invitation struct {
	To          string
	ProjectName string
	Role        string
	AcceptURL   string
	ExpiresAt   time.Time
}

func (s *EmailService) SendProjectInvitation(ctx context.Context, inv Invitation) error {
	subject := fmt.Sprintf("You've been invited to join %s", inv.ProjectName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Project Invitation</h2>
			<p>Hi,</p>
			<p>You have been invited to join the project <strong>%s</strong> as <strong>%s</strong>.</p>
			<p><a href="%s">Click here to accept this invitation</a></p>
			<p>This link expires on %s.</p>
		</body>
		</html>
	`, html.EscapeString(inv.ProjectName), html.EscapeString(inv.Role),
		html.EscapeString(inv.AcceptURL), inv.ExpiresAt.UTC().Format(time.RFC1123))

	return s.Send(ctx, inv.To, subject, body)
}

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) IsConfigured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != "" && m.cfg.From != ""
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.IsConfigured() {
		return ErrEmailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTMLBody)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(gm); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. Development only.
type LogMailer struct {
	log logrus.FieldLogger
}

func NewLogMailer(log logrus.FieldLogger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("email not sent, log transport active")
	m.log.WithField("to", msg.To).Debug(msg.HTMLBody)
	return nil
}

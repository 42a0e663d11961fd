package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the outgoing mail server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// mailSender is satisfied by *gomail.Dialer
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier sends notifications as HTML mail
type EmailNotifier struct {
	sender mailSender
	from   string
	logger coreport.Logger
}

var _ coreport.Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier creates an SMTP notifier
func NewEmailNotifier(cfg SMTPConfig, logger coreport.Logger) *EmailNotifier {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	return newEmailNotifier(dialer, cfg.From, logger)
}

func newEmailNotifier(sender mailSender, from string, logger coreport.Logger) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, logger: logger}
}

// Notify mails the notification. Recipients without an address are skipped.
func (n *EmailNotifier) Notify(ctx context.Context, notification coreport.Notification) error {
	if notification.Email == "" {
		n.logger.Debug("Skipping email notification without address", map[string]any{
			"kind":         notification.Kind,
			"recipient_id": notification.RecipientID,
		})
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", notification.Email)
	m.SetHeader("Subject", notification.Subject)
	m.SetBody("text/html", renderBody(notification))

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send %s email: %w", notification.Kind, err)
	}
	return nil
}

func renderBody(notification coreport.Notification) string {
	return fmt.Sprintf("<p>%s</p>", html.EscapeString(notification.Body))
}

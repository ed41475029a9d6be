package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/openboard/board-api/config"
)

// SMTPSender delivers through a plain SMTP relay. SMTP assigns no
// message id, so one is generated locally for the audit trail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	if msg.BodyText != "" {
		m.SetBody("text/plain", msg.BodyText)
		m.AddAlternative("text/html", msg.BodyHTML)
	} else {
		m.SetBody("text/html", msg.BodyHTML)
	}

	messageID := fmt.Sprintf("smtp-%s", uuid.New())
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", messageID, s.dialer.Host))

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", &DeliveryError{Provider: "smtp", Message: err.Error()}
	}

	return messageID, nil
}

// NewSender picks the delivery backend from config.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	switch cfg.Provider {
	case "mailgun":
		return NewMailgunSender(cfg), nil
	case "smtp":
		return NewSMTPSender(cfg), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}

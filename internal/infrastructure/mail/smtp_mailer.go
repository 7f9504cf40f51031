// Package mail envía correos por SMTP con gomail.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/multitenant-inventory/internal/application/report"
	"github.com/jhoicas/multitenant-inventory/pkg/config"
)

var _ report.Mailer = (*SMTPMailer)(nil)

// dialer subconjunto de *gomail.Dialer usado por el mailer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer implementa report.Mailer.
type SMTPMailer struct {
	from   string
	dialer dialer
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// Send arma el mensaje con el adjunto y lo transmite. gomail no acepta contexto:
// solo se verifica la cancelación antes de conectar.
func (s *SMTPMailer) Send(ctx context.Context, msg report.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.AttachmentPath != "" {
		if msg.AttachmentName != "" {
			m.Attach(msg.AttachmentPath, gomail.Rename(msg.AttachmentName))
		} else {
			m.Attach(msg.AttachmentPath)
		}
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", msg.To, err)
	}
	return nil
}

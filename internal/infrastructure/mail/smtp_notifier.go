// Package mail envía los mensajes del formulario de soporte por SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/prisma-api/internal/application/ports"
	"github.com/jhoicas/prisma-api/pkg/config"
)

var _ ports.Notifier = (*SMTPNotifier)(nil)

// ErrDisabled SMTP_HOST vacío: el envío queda deshabilitado.
var ErrDisabled = errors.New("mail: smtp no configurado")

// dialer abstrae gomail.Dialer para los tests.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier implementa ports.Notifier con gomail. Un intento por mensaje, sin reintentos.
type SMTPNotifier struct {
	dialer dialer
	from   string
	to     string
}

// NewSMTPNotifier construye el notificador. Con Host vacío todos los envíos fallan con ErrDisabled.
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	n := &SMTPNotifier{from: cfg.From, to: cfg.SupportEmail}
	if cfg.Host != "" {
		n.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return n
}

// SendSupportMessage envía el mensaje al correo de soporte. replyTo vacío se omite.
func (n *SMTPNotifier) SendSupportMessage(ctx context.Context, subject, body, replyTo string) error {
	if n.dialer == nil {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", n.to, err)
	}
	return nil
}

package ports

import "context"

// Notifier puerto de salida para correos. El adaptador SMTP (gomail) lo implementa;
// en tests se reemplaza por un fake.
type Notifier interface {
	// SendSupportMessage envía al soporte el mensaje de un cliente. replyTo puede venir vacío.
	SendSupportMessage(ctx context.Context, subject, body, replyTo string) error
}

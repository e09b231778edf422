// Package portal casos de uso del área del cliente: login por teléfono, seguimiento de compras,
// pago simulado del 2º sinal y descarga del laudo.
package portal

import (
	"context"

	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repos atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		customers repository.CustomerRepository,
		sales repository.SaleRepository,
	) error) error
}

// JWTConfig configuración para generación de tokens del portal.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

package repository

import (
	"context"

	"github.com/jhoicas/prisma-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate como GetByID pero bloquea la fila (SELECT ... FOR UPDATE); usar dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// Update guarda si sale.Version coincide con la versión persistida e incrementa Version.
	// Versión desactualizada → domain.ErrConflict.
	Update(ctx context.Context, sale *entity.Sale) error
	// ListAll todas las ventas con nombre del cliente, más recientes primero.
	ListAll(ctx context.Context) ([]*entity.SaleSummary, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.SaleSummary, error)
}

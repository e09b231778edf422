package repository

import (
	"context"

	"github.com/jhoicas/prisma-api/internal/domain/entity"
)

// CustomerFilter filtros del listado de clientes del panel.
type CustomerFilter struct {
	Search string // nombre, teléfono o email (subcadena, sin distinguir mayúsculas)
	City   string
	State  string
}

// CustomerRepository define el puerto de persistencia para Customer.
// Los Get devuelven (nil, nil) cuando no existe el registro.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByPhoneDigits(ctx context.Context, digits string) (*entity.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter, limit, offset int) ([]*entity.Customer, error)
	Count(ctx context.Context, filter CustomerFilter) (int, error)
	// ListWithoutLogin clientes sin credencial del portal, ordenados por fecha de registro.
	ListWithoutLogin(ctx context.Context) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// SetUserID vincula la credencial del portal. Falla con ErrConflict si ya tenía una.
	SetUserID(ctx context.Context, customerID, userID string) error
}

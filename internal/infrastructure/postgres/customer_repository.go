package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, phone, phone_digits, email, city, state, user_id, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(s scanner) (*entity.Customer, error) {
	var c entity.Customer
	err := s.Scan(&c.ID, &c.Name, &c.Phone, &c.PhoneDigits, &c.Email, &c.City, &c.State, &c.UserID,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente. Teléfono repetido → ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.PhoneDigits, c.Email, c.City, c.State, c.UserID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) getOne(ctx context.Context, where string, arg any) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + where
	c, err := scanCustomer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByPhoneDigits obtiene un cliente por teléfono normalizado.
func (r *CustomerRepo) GetByPhoneDigits(ctx context.Context, digits string) (*entity.Customer, error) {
	return r.getOne(ctx, "phone_digits = $1", digits)
}

// GetByUserID obtiene el cliente vinculado a una credencial del portal.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID string) (*entity.Customer, error) {
	return r.getOne(ctx, "user_id = $1", userID)
}

func customerWhere(f repository.CustomerFilter) (string, []any) {
	var conds []string
	var args []any
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d OR phone_digits ILIKE $%d OR email ILIKE $%d)", n, n, n, n))
	}
	if s := strings.TrimSpace(f.City); s != "" {
		args = append(args, s)
		conds = append(conds, fmt.Sprintf("city ILIKE $%d", len(args)))
	}
	if s := strings.TrimSpace(f.State); s != "" {
		args = append(args, strings.ToUpper(s))
		conds = append(conds, fmt.Sprintf("state = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List lista clientes filtrados, más recientes primero.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter, limit, offset int) ([]*entity.Customer, error) {
	where, args := customerWhere(f)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		customerColumns, where, len(args)-1, len(args))
	return r.list(ctx, query, args...)
}

// Count total de clientes que cumplen el filtro.
func (r *CustomerRepo) Count(ctx context.Context, f repository.CustomerFilter) (int, error) {
	where, args := customerWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// ListWithoutLogin clientes sin credencial del portal.
func (r *CustomerRepo) ListWithoutLogin(ctx context.Context) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id IS NULL ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *CustomerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, phone_digits = $4, email = $5, city = $6, state = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.PhoneDigits, c.Email, c.City, c.State, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetUserID vincula la credencial solo si el cliente aún no tiene una.
func (r *CustomerRepo) SetUserID(ctx context.Context, customerID, userID string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET user_id = $2, updated_at = NOW() WHERE id = $1 AND user_id IS NULL`,
		customerID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("link customer user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/prisma-api/internal/application/portal"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

// Ensure TxRunner implements portal.TxRunner.
var _ portal.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Lo usan la creación de accesos (usuario + vínculo con el cliente) y el pago del 2º sinal.
func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewCustomerRepository(tx), NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// Columnas de etapas en el orden de pipeline.Stage.
const saleColumns = `s.id, s.customer_id,
	s.stage_quote, s.stage_sale_closed, s.stage_documentation, s.stage_first_deposit,
	s.stage_production, s.stage_second_deposit, s.stage_shipped,
	s.value, s.notes, s.final_document, s.second_deposit_confirmed, s.version, s.created_at, s.updated_at`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func saleDest(s *entity.Sale) []any {
	f := &s.Stages
	return []any{
		&s.ID, &s.CustomerID,
		&f[pipeline.StageQuote], &f[pipeline.StageSaleClosed], &f[pipeline.StageDocumentation], &f[pipeline.StageFirstDeposit],
		&f[pipeline.StageProduction], &f[pipeline.StageSecondDeposit], &f[pipeline.StageShipped],
		&s.Value, &s.Notes, &s.FinalDocument, &s.SecondDepositConfirmed, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	}
}

func scanSale(sc scanner) (*entity.Sale, error) {
	var s entity.Sale
	if err := sc.Scan(saleDest(&s)...); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una venta nueva con Version = 1.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if s.Version == 0 {
		s.Version = 1
	}
	f := s.Stages
	query := `
		INSERT INTO sales (id, customer_id,
			stage_quote, stage_sale_closed, stage_documentation, stage_first_deposit,
			stage_production, stage_second_deposit, stage_shipped,
			value, notes, final_document, second_deposit_confirmed, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CustomerID,
		f[pipeline.StageQuote], f[pipeline.StageSaleClosed], f[pipeline.StageDocumentation], f[pipeline.StageFirstDeposit],
		f[pipeline.StageProduction], f[pipeline.StageSecondDeposit], f[pipeline.StageShipped],
		s.Value, s.Notes, s.FinalDocument, s.SecondDepositConfirmed, s.Version, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales s WHERE s.id = $1`, id)
}

// GetForUpdate obtiene la venta bloqueando la fila hasta el fin de la transacción.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales s WHERE s.id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Update guarda la venta con control optimista por versión.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	f := s.Stages
	query := `
		UPDATE sales SET
			stage_quote = $3, stage_sale_closed = $4, stage_documentation = $5, stage_first_deposit = $6,
			stage_production = $7, stage_second_deposit = $8, stage_shipped = $9,
			value = $10, notes = $11, final_document = $12, second_deposit_confirmed = $13,
			updated_at = $14, version = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Version,
		f[pipeline.StageQuote], f[pipeline.StageSaleClosed], f[pipeline.StageDocumentation], f[pipeline.StageFirstDeposit],
		f[pipeline.StageProduction], f[pipeline.StageSecondDeposit], f[pipeline.StageShipped],
		s.Value, s.Notes, s.FinalDocument, s.SecondDepositConfirmed, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sales WHERE id = $1)`, s.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check sale: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	s.Version++
	return nil
}

// ListAll todas las ventas con el nombre del cliente, más recientes primero.
func (r *SaleRepo) ListAll(ctx context.Context) ([]*entity.SaleSummary, error) {
	query := `SELECT ` + saleColumns + `, c.name
		FROM sales s JOIN customers c ON c.id = s.customer_id
		ORDER BY s.created_at DESC`
	return r.listSummaries(ctx, query)
}

// ListRecent últimas limit ventas con el nombre del cliente.
func (r *SaleRepo) ListRecent(ctx context.Context, limit int) ([]*entity.SaleSummary, error) {
	query := `SELECT ` + saleColumns + `, c.name
		FROM sales s JOIN customers c ON c.id = s.customer_id
		ORDER BY s.created_at DESC LIMIT $1`
	return r.listSummaries(ctx, query, limit)
}

func (r *SaleRepo) listSummaries(ctx context.Context, query string, args ...any) ([]*entity.SaleSummary, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleSummary
	for rows.Next() {
		var s entity.SaleSummary
		if err := rows.Scan(append(saleDest(&s.Sale), &s.CustomerName)...); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByCustomer ventas de un cliente, más recientes primero.
func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales s WHERE s.customer_id = $1 ORDER BY s.created_at DESC`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

package sales

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/ports"
	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
	"github.com/jhoicas/prisma-api/pkg/logger"
)

// DocumentDir carpeta del storage donde se guardan los laudos.
const DocumentDir = "vendas/documentos"

// SaleUseCase casos de uso del personal sobre ventas.
type SaleUseCase struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	storage   ports.DocumentStorage
	events    ports.EventRecorder
	log       *logger.Logger
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso. events puede ser nil.
func NewSaleUseCase(
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	storage ports.DocumentStorage,
	events ports.EventRecorder,
	log *logger.Logger,
) *SaleUseCase {
	if events == nil {
		events = ports.NopRecorder{}
	}
	return &SaleUseCase{sales: sales, customers: customers, storage: storage, events: events, log: log, now: time.Now}
}

func (uc *SaleUseCase) load(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *SaleUseCase) customerName(ctx context.Context, id string) string {
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil || c == nil {
		return ""
	}
	return c.Name
}

// Create registra una venta para un cliente existente.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.Value != nil && in.Value.IsNegative() {
		return nil, fmt.Errorf("%w: valor negativo", domain.ErrInvalidInput)
	}
	c, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}
	now := uc.now()
	s := &entity.Sale{
		ID:         uuid.New().String(),
		CustomerID: c.ID,
		Stages:     FlagsFromDTO(in.Stages),
		Value:      nullDecimal(in.Value),
		Notes:      strings.TrimSpace(in.Notes),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.sales.Create(ctx, s); err != nil {
		return nil, err
	}
	out := ToSaleResponse(s, c.Name)
	return &out, nil
}

// GetByID venta con estado derivado y nombre del cliente.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(s, uc.customerName(ctx, s.CustomerID))
	return &out, nil
}

// Update reemplaza etapas, valor y notas. in.Version debe ser la versión leída; si otro usuario
// guardó antes, devuelve ErrConflict.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if in.Value != nil && in.Value.IsNegative() {
		return nil, fmt.Errorf("%w: valor negativo", domain.ErrInvalidInput)
	}
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Version != s.Version {
		return nil, domain.ErrConflict
	}
	s.Stages = FlagsFromDTO(in.Stages)
	s.Value = nullDecimal(in.Value)
	s.Notes = strings.TrimSpace(in.Notes)
	s.SecondDepositConfirmed = in.SecondDepositConfirmed
	s.UpdatedAt = uc.now()
	if err := uc.sales.Update(ctx, s); err != nil {
		return nil, err
	}
	out := ToSaleResponse(s, uc.customerName(ctx, s.CustomerID))
	return &out, nil
}

// List ventas del panel, más recientes primero. El filtro por estado se evalúa con el estado
// derivado de cada fila, antes de paginar.
func (uc *SaleUseCase) List(ctx context.Context, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	var want pipeline.Status
	if in.Status != "" {
		st, ok := pipeline.ParseStatus(in.Status)
		if !ok {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
		}
		want = st
	}
	all, err := uc.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterByStatus(all, want)
	total := len(filtered)
	start := min(in.Offset, total)
	end := min(start+in.Limit, total)

	items := make([]dto.SaleResponse, 0, end-start)
	for _, s := range filtered[start:end] {
		items = append(items, ToSaleResponse(&s.Sale, s.CustomerName))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// FilterByStatus conserva las ventas cuyo estado derivado es want; want vacío no filtra.
func FilterByStatus(list []*entity.SaleSummary, want pipeline.Status) []*entity.SaleSummary {
	if want == "" {
		return list
	}
	out := make([]*entity.SaleSummary, 0, len(list))
	for _, s := range list {
		if s.Status() == want {
			out = append(out, s)
		}
	}
	return out
}

// Advance marca como concluida la próxima etapa pendiente. Con todo concluido no guarda nada.
func (uc *SaleUseCase) Advance(ctx context.Context, id string) (*dto.AdvanceSaleResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	next, stage, ok := pipeline.Advance(s.Stages)
	if !ok {
		return &dto.AdvanceSaleResponse{Advanced: false, Sale: ToSaleResponse(s, uc.customerName(ctx, s.CustomerID))}, nil
	}
	s.Stages = next
	s.UpdatedAt = uc.now()
	if err := uc.sales.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.events.StageAdvanced(stage.Name())
	uc.log.Info().Str("sale_id", s.ID).Str("stage", stage.Name()).Msg("etapa concluida")
	return &dto.AdvanceSaleResponse{
		Advanced: true,
		Stage:    stage.Name(),
		Sale:     ToSaleResponse(s, uc.customerName(ctx, s.CustomerID)),
	}, nil
}

// AttachDocument guarda el laudo final (PDF) de una venta con confecção concluida.
func (uc *SaleUseCase) AttachDocument(ctx context.Context, id, filename string, r io.Reader) (*dto.SaleResponse, error) {
	if !strings.EqualFold(path.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("%w: el laudo debe ser PDF", domain.ErrInvalidInput)
	}
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Stages.Done(pipeline.StageProduction) {
		return nil, fmt.Errorf("%w: confecção pendiente", domain.ErrNotEligible)
	}
	stored, err := uc.storage.Save(ctx, path.Join(DocumentDir, s.ID+".pdf"), r)
	if err != nil {
		return nil, fmt.Errorf("guardar laudo: %w", err)
	}
	s.FinalDocument = stored
	s.UpdatedAt = uc.now()
	if err := uc.sales.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", s.ID).Str("path", stored).Msg("laudo adjuntado")
	out := ToSaleResponse(s, uc.customerName(ctx, s.CustomerID))
	return &out, nil
}

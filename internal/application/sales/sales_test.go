package sales_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prisma-api/internal/application/apptest"
	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/sales"
	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
	"github.com/jhoicas/prisma-api/pkg/logger"
)

type fixture struct {
	store     *apptest.Store
	storage   *apptest.Storage
	events    *apptest.Recorder
	customers *sales.CustomerUseCase
	sales     *sales.SaleUseCase
}

func newFixture() *fixture {
	st := apptest.NewStore()
	storage := apptest.NewStorage()
	events := &apptest.Recorder{}
	return &fixture{
		store:     st,
		storage:   storage,
		events:    events,
		customers: sales.NewCustomerUseCase(apptest.CustomerRepo{S: st}),
		sales:     sales.NewSaleUseCase(apptest.SaleRepo{S: st}, apptest.CustomerRepo{S: st}, storage, events, logger.Nop()),
	}
}

func (f *fixture) customer(t *testing.T, name, phone string) string {
	t.Helper()
	c, err := f.customers.Create(context.Background(), dto.CreateCustomerRequest{Name: name, Phone: phone, State: "df"})
	require.NoError(t, err)
	return c.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerCreate_NormalizaTelefono(t *testing.T) {
	f := newFixture()
	c, err := f.customers.Create(context.Background(), dto.CreateCustomerRequest{
		Name: " Maria Souza ", Phone: "(61) 99831-1920", State: "df",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Souza", c.Name)
	assert.Equal(t, "61998311920", c.PhoneDigits)
	assert.Equal(t, "DF", c.State)
	assert.False(t, c.HasLogin)
}

func TestCustomerCreate_TelefonoDuplicado(t *testing.T) {
	f := newFixture()
	f.customer(t, "A", "(61) 99831-1920")

	_, err := f.customers.Create(context.Background(), dto.CreateCustomerRequest{Name: "B", Phone: "61998311920"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el mismo número con otro formato es duplicado")
}

func TestCustomerCreate_FormatoInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.customers.Create(context.Background(), dto.CreateCustomerRequest{Name: "A", Phone: "99-31"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerUpdate_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.customers.Update(context.Background(), "nope", dto.UpdateCustomerRequest{Name: "A", Phone: "6133334444"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerList_FiltraPorBusqueda(t *testing.T) {
	f := newFixture()
	f.customer(t, "Maria Souza", "6133334444")
	f.customer(t, "João Lima", "6133335555")

	out, err := f.customers.List(context.Background(), dto.CustomerListRequest{Search: "maria"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Maria Souza", out.Items[0].Name)
	assert.Equal(t, 1, out.Page.Total)
	assert.Equal(t, 20, out.Page.Limit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleCreate_DerivaEstado(t *testing.T) {
	f := newFixture()
	cid := f.customer(t, "Maria", "6133334444")
	v := decimal.RequireFromString("1500.00")

	s, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: cid,
		Value:      &v,
		Stages:     dto.StageFlagsDTO{Quote: true, SaleClosed: true, Documentation: true, FirstDeposit: true},
	})
	require.NoError(t, err)

	assert.Equal(t, string(pipeline.StatusInProgress), s.Status)
	assert.Equal(t, "Em Andamento", s.StatusLabel)
	assert.Equal(t, "57.1", s.CompletionPercent.String())
	assert.Equal(t, "production", s.NextStage)
	assert.Equal(t, "Maria", s.CustomerName)
	assert.Equal(t, 1, s.Version)
}

func TestSaleCreate_ClienteInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{CustomerID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUpdate_VersionDesactualizadaEsConflicto(t *testing.T) {
	f := newFixture()
	cid := f.customer(t, "Maria", "6133334444")
	s, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{CustomerID: cid})
	require.NoError(t, err)

	updated, err := f.sales.Update(context.Background(), s.ID, dto.UpdateSaleRequest{Version: 1, Notes: "primera"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	_, err = f.sales.Update(context.Background(), s.ID, dto.UpdateSaleRequest{Version: 1, Notes: "segunda"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSaleAdvance_HastaCompletarYLuegoNoOp(t *testing.T) {
	f := newFixture()
	cid := f.customer(t, "Maria", "6133334444")
	s, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{CustomerID: cid})
	require.NoError(t, err)

	for i := 0; i < pipeline.StageCount; i++ {
		out, err := f.sales.Advance(context.Background(), s.ID)
		require.NoError(t, err)
		assert.True(t, out.Advanced)
		assert.Equal(t, pipeline.Stage(i).Name(), out.Stage)
	}

	out, err := f.sales.Advance(context.Background(), s.ID)
	require.NoError(t, err)
	assert.False(t, out.Advanced)
	assert.Equal(t, string(pipeline.StatusCompleted), out.Sale.Status)
	assert.Equal(t, pipeline.AllStagesCompleted, out.Sale.NextStage)
	assert.Len(t, f.events.Advanced, pipeline.StageCount)
	assert.Equal(t, 1+pipeline.StageCount, out.Sale.Version, "el no-op no incrementa la versión")
}

func TestSaleList_FiltraPorEstadoDerivadoAntesDePaginar(t *testing.T) {
	f := newFixture()
	cid := f.customer(t, "Maria", "6133334444")
	all := dto.StageFlagsDTO{Quote: true, SaleClosed: true, Documentation: true, FirstDeposit: true, Production: true, SecondDeposit: true, Shipped: true}
	for i := 0; i < 3; i++ {
		_, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{CustomerID: cid, Stages: all})
		require.NoError(t, err)
	}
	_, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{CustomerID: cid})
	require.NoError(t, err)
	_, err = f.sales.Create(context.Background(), dto.CreateSaleRequest{CustomerID: cid, Stages: dto.StageFlagsDTO{Shipped: true}})
	require.NoError(t, err)

	out, err := f.sales.List(context.Background(), dto.SaleListRequest{Status: "concluida", PageRequest: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)

	out, err = f.sales.List(context.Background(), dto.SaleListRequest{Status: "andamento"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "envio sin orçamento cuenta como en andamento")

	_, err = f.sales.List(context.Background(), dto.SaleListRequest{Status: "cancelada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleAttachDocument_RequiereConfeccion(t *testing.T) {
	f := newFixture()
	cid := f.customer(t, "Maria", "6133334444")
	s, err := f.sales.Create(context.Background(), dto.CreateSaleRequest{CustomerID: cid})
	require.NoError(t, err)

	_, err = f.sales.AttachDocument(context.Background(), s.ID, "laudo.pdf", strings.NewReader("%PDF"))
	assert.ErrorIs(t, err, domain.ErrNotEligible)

	f.store.Sales[s.ID] = withProduction(f.store.Sales[s.ID])
	_, err = f.sales.AttachDocument(context.Background(), s.ID, "laudo.docx", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.sales.AttachDocument(context.Background(), s.ID, "Laudo.PDF", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.True(t, out.HasDocument)
	assert.Contains(t, f.storage.Files, sales.DocumentDir+"/"+s.ID+".pdf")
}

func withProduction(s entity.Sale) entity.Sale {
	for i := 0; i <= int(pipeline.StageProduction); i++ {
		s.Stages[i] = true
	}
	s.UpdatedAt = time.Now()
	return s
}

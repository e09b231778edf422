package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
)

// Sale una contratación de avaliação de un cliente, con sus siete etapas.
// SecondDepositConfirmed lo marca el cliente desde el portal y es distinto de la etapa StageSecondDeposit,
// que solo modifica el personal.
type Sale struct {
	ID                     string
	CustomerID             string
	Stages                 pipeline.Flags
	Value                  decimal.NullDecimal // valor total; puede no estar definido
	Notes                  string
	FinalDocument          string // ruta relativa del laudo dentro del storage; vacío = sin laudo
	SecondDepositConfirmed bool
	Version                int // control de concurrencia optimista
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Status estado derivado de las etapas.
func (s *Sale) Status() pipeline.Status { return pipeline.OverallStatus(s.Stages) }

// CompletionPercent porcentaje de etapas concluidas (un decimal).
func (s *Sale) CompletionPercent() decimal.Decimal { return pipeline.CompletionPercent(s.Stages) }

// HasDocument informa si hay un laudo adjunto.
func (s *Sale) HasDocument() bool { return s.FinalDocument != "" }

// CanPaySecondDeposit confecção concluida y pago aún no confirmado.
func (s *Sale) CanPaySecondDeposit() bool {
	return pipeline.CanPaySecondDeposit(s.Stages, s.SecondDepositConfirmed)
}

// CanDownloadDocument confecção concluida, pago confirmado y laudo adjunto.
func (s *Sale) CanDownloadDocument() bool {
	return pipeline.CanDownloadDocument(s.Stages, s.SecondDepositConfirmed, s.HasDocument())
}

// ValueOrZero valor total; nulo cuenta como cero.
func (s *Sale) ValueOrZero() decimal.Decimal {
	if !s.Value.Valid {
		return decimal.Zero
	}
	return s.Value.Decimal
}

// DocumentFilename nombre de descarga del laudo.
func (s *Sale) DocumentFilename() string {
	return "Laudo_Venda_" + s.ID + ".pdf"
}

// SaleSummary fila de listados del panel: venta más nombre del cliente.
type SaleSummary struct {
	Sale
	CustomerName string
}

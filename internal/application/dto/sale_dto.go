package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageFlagsDTO las siete etapas de una venta.
type StageFlagsDTO struct {
	Quote         bool `json:"quote"`
	SaleClosed    bool `json:"sale_closed"`
	Documentation bool `json:"documentation"`
	FirstDeposit  bool `json:"first_deposit"`
	Production    bool `json:"production"`
	SecondDeposit bool `json:"second_deposit"`
	Shipped       bool `json:"shipped"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	CustomerID string           `json:"customer_id" validate:"required,uuid"`
	Value      *decimal.Decimal `json:"value"`
	Notes      string           `json:"notes"`
	Stages     StageFlagsDTO    `json:"stages"`
}

// UpdateSaleRequest actualización del personal. Version es la leída previamente (control optimista).
type UpdateSaleRequest struct {
	Version                int              `json:"version" validate:"required,min=1"`
	Value                  *decimal.Decimal `json:"value"`
	Notes                  string           `json:"notes"`
	Stages                 StageFlagsDTO    `json:"stages"`
	SecondDepositConfirmed bool             `json:"second_deposit_confirmed"`
}

// SaleListRequest filtros del listado de ventas.
type SaleListRequest struct {
	PageRequest
	Status string `query:"status"` // started | in_progress | completed (acepta iniciada, andamento, concluida)
}

// SaleResponse venta con el estado derivado.
type SaleResponse struct {
	ID                     string           `json:"id"`
	CustomerID             string           `json:"customer_id"`
	CustomerName           string           `json:"customer_name,omitempty"`
	Stages                 StageFlagsDTO    `json:"stages"`
	Value                  *decimal.Decimal `json:"value"`
	Notes                  string           `json:"notes,omitempty"`
	HasDocument            bool             `json:"has_document"`
	SecondDepositConfirmed bool             `json:"second_deposit_confirmed"`
	Status                 string           `json:"status"`
	StatusLabel            string           `json:"status_label"`
	CompletionPercent      decimal.Decimal  `json:"completion_percent"`
	NextStage              string           `json:"next_stage"`
	NextStageLabel         string           `json:"next_stage_label"`
	Version                int              `json:"version"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

// SaleListResponse página de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AdvanceSaleResponse resultado de avanzar la próxima etapa pendiente.
type AdvanceSaleResponse struct {
	Advanced bool         `json:"advanced"`
	Stage    string       `json:"stage,omitempty"`
	Sale     SaleResponse `json:"sale"`
}

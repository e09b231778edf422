// Package sales casos de uso del personal sobre clientes y ventas.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
)

// FlagsToDTO convierte las etapas al formato de la API.
func FlagsToDTO(f pipeline.Flags) dto.StageFlagsDTO {
	return dto.StageFlagsDTO{
		Quote:         f[pipeline.StageQuote],
		SaleClosed:    f[pipeline.StageSaleClosed],
		Documentation: f[pipeline.StageDocumentation],
		FirstDeposit:  f[pipeline.StageFirstDeposit],
		Production:    f[pipeline.StageProduction],
		SecondDeposit: f[pipeline.StageSecondDeposit],
		Shipped:       f[pipeline.StageShipped],
	}
}

// FlagsFromDTO convierte las etapas recibidas por la API.
func FlagsFromDTO(d dto.StageFlagsDTO) pipeline.Flags {
	var f pipeline.Flags
	f[pipeline.StageQuote] = d.Quote
	f[pipeline.StageSaleClosed] = d.SaleClosed
	f[pipeline.StageDocumentation] = d.Documentation
	f[pipeline.StageFirstDeposit] = d.FirstDeposit
	f[pipeline.StageProduction] = d.Production
	f[pipeline.StageSecondDeposit] = d.SecondDeposit
	f[pipeline.StageShipped] = d.Shipped
	return f
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

func decimalPtr(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

// ToSaleResponse venta con estado, porcentaje y próxima etapa derivados.
func ToSaleResponse(s *entity.Sale, customerName string) dto.SaleResponse {
	status := s.Status()
	return dto.SaleResponse{
		ID:                     s.ID,
		CustomerID:             s.CustomerID,
		CustomerName:           customerName,
		Stages:                 FlagsToDTO(s.Stages),
		Value:                  decimalPtr(s.Value),
		Notes:                  s.Notes,
		HasDocument:            s.HasDocument(),
		SecondDepositConfirmed: s.SecondDepositConfirmed,
		Status:                 string(status),
		StatusLabel:            status.Label(),
		CompletionPercent:      s.CompletionPercent(),
		NextStage:              pipeline.NextIncompleteStageName(s.Stages),
		NextStageLabel:         pipeline.NextIncompleteStageLabel(s.Stages),
		Version:                s.Version,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

// ToCustomerResponse salida de un cliente.
func ToCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		PhoneDigits: c.PhoneDigits,
		Email:       c.Email,
		City:        c.City,
		State:       c.State,
		HasLogin:    c.HasLogin(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

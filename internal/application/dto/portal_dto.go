package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortalLoginRequest login del cliente: teléfono (con o sin máscara) y contraseña.
type PortalLoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PortalLoginResponse token del portal más datos básicos del cliente.
type PortalLoginResponse struct {
	Token    string                `json:"token"`
	Customer PortalCustomerSummary `json:"customer"`
}

// PortalCustomerSummary datos del cliente visibles en el portal.
type PortalCustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// PortalSaleDTO venta tal como la ve el cliente.
type PortalSaleDTO struct {
	ID                  string           `json:"id"`
	Stages              []PortalStageDTO `json:"stages"`
	Value               *decimal.Decimal `json:"value"`
	Status              string           `json:"status"`
	StatusLabel         string           `json:"status_label"`
	CompletionPercent   decimal.Decimal  `json:"completion_percent"`
	NextStage           string           `json:"next_stage"`
	NextStageLabel      string           `json:"next_stage_label"`
	SecondDepositPaid   bool             `json:"second_deposit_paid"`
	CanPaySecondDeposit bool             `json:"can_pay_second_deposit"`
	CanDownloadDocument bool             `json:"can_download_document"`
	CreatedAt           time.Time        `json:"created_at"`
}

// PortalStageDTO etapa con su estado, en el orden del proceso.
type PortalStageDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// PortalDashboardDTO resumen del portal del cliente.
type PortalDashboardDTO struct {
	Customer    PortalCustomerSummary `json:"customer"`
	TotalSales  int                   `json:"total_sales"`
	Completed   int                   `json:"completed"`
	InProgress  int                   `json:"in_progress"`
	RecentSales []PortalSaleDTO       `json:"recent_sales"`
}

// ChangePasswordRequest cambio de contraseña del cliente.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// SupportRequest mensaje al soporte desde el portal.
type SupportRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

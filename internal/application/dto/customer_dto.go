package dto

import "time"

// CreateCustomerRequest entrada para registrar un cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"required,max=20"`
	Email string `json:"email" validate:"omitempty,email"`
	City  string `json:"city" validate:"omitempty,max=100"`
	State string `json:"state" validate:"omitempty,len=2"`
}

// UpdateCustomerRequest entrada para actualizar un cliente (mismos campos que el alta).
type UpdateCustomerRequest = CreateCustomerRequest

// CustomerListRequest filtros del listado de clientes.
type CustomerListRequest struct {
	PageRequest
	Search string `query:"q"`
	City   string `query:"city"`
	State  string `query:"state"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	PhoneDigits string    `json:"phone_digits"`
	Email       string    `json:"email,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	HasLogin    bool      `json:"has_login"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerListResponse página de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CredentialsResponse credencial generada para el portal. Password solo se devuelve al crearla.
type CredentialsResponse struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// ProvisionResultResponse resultado del alta masiva de credenciales.
type ProvisionResultResponse struct {
	Created []CredentialsResponse `json:"created"`
	Failed  []ProvisionFailure    `json:"failed,omitempty"`
}

// ProvisionFailure cliente al que no se le pudo crear credencial.
type ProvisionFailure struct {
	CustomerID string `json:"customer_id"`
	Reason     string `json:"reason"`
}

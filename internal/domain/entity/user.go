package entity

import "time"

// Roles válidos para User.
const (
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User credencial de acceso. Staff entra al panel; customer al portal (username = dígitos del teléfono).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Email        string
	Role         string // staff, customer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive informa si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == UserStatusActive
}

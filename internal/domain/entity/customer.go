package entity

import "time"

// Customer representa un cliente de la empresa de avaliações.
// PhoneDigits es el teléfono normalizado (solo dígitos) y es único; con él se genera el login del portal.
type Customer struct {
	ID          string
	Name        string
	Phone       string // tal como fue digitado: "(61) 99831-1920"
	PhoneDigits string // "61998311920"
	Email       string
	City        string
	State       string  // UF, dos letras
	UserID      *string // credencial del portal; nil = sin login
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasLogin informa si el cliente ya tiene credencial para el portal.
func (c *Customer) HasLogin() bool {
	return c.UserID != nil && *c.UserID != ""
}

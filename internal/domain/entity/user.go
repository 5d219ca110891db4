package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User usuario del sistema; su Username se registra como operador en los documentos.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Name         string
	Role         string // admin, bodeguero, vendedor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleContador  = "contador"  // acceso a reportes financieros
	RoleBodeguero = "bodeguero" // acceso a operaciones de kardex
)

// User usuario de la aplicación.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import "time"

// Roles válidos para User. Los mecánicos del taller son usuarios con RoleMecanico.
const (
	RoleAdmin    = "admin"
	RoleMecanico = "mecanico"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, mecanico, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import "time"

// Roles válidos para User.
const (
	RolePropietario = "propietario"
	RoleGerente     = "gerente"
	RoleMesero      = "mesero"
)

// User representa un usuario del back-office (pertenece a un Restaurant).
// El core del editor no autoriza nada por sí mismo: el rol solo lo consulta
// la capa HTTP para decidir qué rutas de mutación se ofrecen.
type User struct {
	ID           string
	RestaurantID string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // propietario, gerente, mesero
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

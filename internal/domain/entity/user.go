package entity

import "time"

// Role es el conjunto cerrado de roles del sistema.
type Role string

// Roles válidos para User. La cadena de aprobación usa supervisor (nivel 1),
// gerente (nivel 2) y admin (override).
const (
	RoleEmpleado   Role = "empleado"
	RoleSupervisor Role = "supervisor"
	RoleGerente    Role = "gerente"
	RoleAdmin      Role = "admin"
)

// ParseRole valida y convierte una cadena a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmpleado, RoleSupervisor, RoleGerente, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleSystemAdmin = "system_admin"
	RoleOrgAdmin    = "org_admin"
	RoleEmployee    = "employee"
)

// Estados de un User.
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
)

// User representa un usuario del sistema.
// OrganizationID vacío = sin organización (caso system_admin).
// CommuteDistance nil = aún no configurada; se fija una sola vez antes del
// primer registro de trayecto.
type User struct {
	ID              string
	Username        string
	PasswordHash    string // bcrypt hash, nunca plano en dominio después de persistir
	Name            string
	Role            string // system_admin, org_admin, employee
	OrganizationID  string
	CommuteDistance *decimal.Decimal // distancia de ida, en millas
	Status          string           // pending, approved
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

package dto

import "time"

// RegisterRequest alta de usuario. Role: org_admin o employee
// (system_admin solo se crea por seed de configuración).
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	OrganizationID  string `json:"organization_id,omitempty"`
	CommuteDistance string `json:"commute_distance,omitempty"` // decimal como string
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	OrganizationID  string    `json:"organization_id,omitempty"`
	CommuteDistance string    `json:"commute_distance,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SetCommuteDistanceRequest fija la distancia de ida del trayecto (una sola vez).
type SetCommuteDistanceRequest struct {
	CommuteDistance string `json:"commute_distance"` // decimal como string
}

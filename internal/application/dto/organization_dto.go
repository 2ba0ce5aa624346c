package dto

import "time"

// CreateOrganizationRequest registro de una nueva organización (queda pending).
type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address"`
}

// RejectOrganizationRequest razón obligatoria del rechazo.
type RejectOrganizationRequest struct {
	Reason string `json:"reason"`
}

// OrganizationResponse representación pública de una organización.
// Los montos viajan como strings decimales para evitar deriva de punto flotante.
type OrganizationResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Address         string    `json:"address"`
	VirtualBalance  string    `json:"virtual_balance"`
	TotalCredits    string    `json:"total_credits"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

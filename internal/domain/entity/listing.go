package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una Listing. active -> sold exactamente una vez, nunca revierte.
const (
	ListingStatusActive = "active"
	ListingStatusSold   = "sold"
)

// Listing oferta de venta de créditos: cantidad y precio unitario fijos
// desde la creación.
type Listing struct {
	ID             string
	OrganizationID string // organización vendedora
	CreditsAmount  decimal.Decimal
	PricePerCredit decimal.Decimal
	Status         string // active, sold
	CreatedAt      time.Time
}

// TotalCost costo total de la oferta (cantidad × precio unitario).
func (l *Listing) TotalCost() decimal.Decimal {
	return l.CreditsAmount.Mul(l.PricePerCredit)
}

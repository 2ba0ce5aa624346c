package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de aprobación de una Organization.
// pending -> approved | rejected, exactamente una vez (estado terminal).
const (
	OrgStatusPending  = "pending"
	OrgStatusApproved = "approved"
	OrgStatusRejected = "rejected"
)

// Organization representa una organización participante del mercado de créditos.
// VirtualBalance y TotalCredits nunca quedan negativos después de una mutación.
type Organization struct {
	ID              string
	Name            string
	Description     string
	Address         string
	VirtualBalance  decimal.Decimal // moneda virtual para comprar/vender créditos
	TotalCredits    decimal.Decimal // créditos de carbono acumulados
	Status          string          // pending, approved, rejected
	RejectionReason string          // solo cuando Status == rejected
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InitialVirtualBalance saldo virtual asignado al crear una organización.
var InitialVirtualBalance = decimal.NewFromInt(1000)

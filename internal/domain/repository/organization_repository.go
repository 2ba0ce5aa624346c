package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ecovia/carbon-market-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization.
// Es el ledger del sistema: saldo virtual y créditos por organización.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	// GetForUpdate obtiene la organización bloqueando la fila (SELECT FOR UPDATE)
	// dentro de una transacción; fuera de transacción equivale a GetByID.
	GetForUpdate(ctx context.Context, id string) (*entity.Organization, error)
	List(ctx context.Context) ([]*entity.Organization, error)
	// UpdateStatus aplica la decisión de aprobación (approved/rejected + razón).
	UpdateStatus(ctx context.Context, id, status, rejectionReason string) error
	// AdjustBalances aplica deltas de moneda y créditos de forma atómica sobre una
	// sola organización. Devuelve ErrInsufficientFunds o ErrInsufficientCredits
	// si el resultado quedaría negativo, sin modificar la fila.
	AdjustBalances(ctx context.Context, id string, currencyDelta, creditsDelta decimal.Decimal) error
	// CreditCommute suma puntos de trayecto a TotalCredits.
	CreditCommute(ctx context.Context, id string, points decimal.Decimal) error
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ecovia/carbon-market-api/internal/domain/entity"
)

// ListingRepository define el puerto de persistencia para Listing.
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	ListActive(ctx context.Context) ([]*entity.Listing, error)
	// SumActiveCredits suma los créditos comprometidos en publicaciones activas
	// de la organización (reserva de créditos al publicar).
	SumActiveCredits(ctx context.Context, organizationID string) (decimal.Decimal, error)
	// MarkSold transición active -> sold mediante compare-and-set: es el ancla de
	// atomicidad de la liquidación. Devuelve ErrNotFound si no existe y
	// ErrAlreadySold si el estado ya no es active.
	MarkSold(ctx context.Context, id string) error
}

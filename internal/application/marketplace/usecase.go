package marketplace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

// TxRunner ejecuta el callback dentro de una transacción con repos de
// organizaciones y publicaciones atados a la misma transacción.
type TxRunner interface {
	RunMarketplace(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		listingRepo repository.ListingRepository,
	) error) error
}

// UseCase mercado interno de créditos: publicaciones y liquidación de compras.
type UseCase struct {
	txRunner    TxRunner
	listingRepo repository.ListingRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, listingRepo repository.ListingRepository) *UseCase {
	return &UseCase{txRunner: txRunner, listingRepo: listingRepo}
}

// CreateListing publica créditos en venta. Valida dentro de la transacción que
// la cantidad no supere los créditos del vendedor netos de lo ya comprometido
// en otras publicaciones activas (las publicaciones reservan créditos).
func (uc *UseCase) CreateListing(ctx context.Context, sellerOrgID string, in dto.CreateListingRequest) (*dto.ListingResponse, error) {
	if sellerOrgID == "" {
		return nil, domain.ErrInvalidOrganization
	}
	creditsAmount, err := parsePositive(in.CreditsAmount)
	if err != nil {
		return nil, err
	}
	pricePerCredit, err := parsePositive(in.PricePerCredit)
	if err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		ID:             uuid.New().String(),
		OrganizationID: sellerOrgID,
		CreditsAmount:  creditsAmount,
		PricePerCredit: pricePerCredit,
		Status:         entity.ListingStatusActive,
		CreatedAt:      time.Now(),
	}

	err = uc.txRunner.RunMarketplace(ctx, func(
		orgRepo repository.OrganizationRepository,
		listingRepo repository.ListingRepository,
	) error {
		// Bloquea la fila del vendedor para serializar publicaciones concurrentes
		org, err := orgRepo.GetForUpdate(ctx, sellerOrgID)
		if err != nil {
			return err
		}
		if org == nil {
			return domain.ErrInvalidOrganization
		}
		reserved, err := listingRepo.SumActiveCredits(ctx, sellerOrgID)
		if err != nil {
			return err
		}
		available := org.TotalCredits.Sub(reserved)
		if creditsAmount.GreaterThan(available) {
			return domain.ErrInsufficientCredits
		}
		return listingRepo.Create(ctx, listing)
	})
	if err != nil {
		return nil, err
	}
	return toListingResponse(listing), nil
}

// ListActive devuelve las publicaciones activas del mercado.
func (uc *UseCase) ListActive(ctx context.Context) ([]*dto.ListingResponse, error) {
	listings, err := uc.listingRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out, nil
}

// SettleTrade liquida la compra de una publicación: mueve créditos del
// vendedor al comprador y moneda del comprador al vendedor, y cierra la
// publicación. Todo dentro de una sola transacción.
//
// Orden de precondiciones (cada una un modo de fallo distinto):
//  1. publicación existe -> ErrNotFound; sigue activa -> ErrAlreadySold
//  2. comprador y vendedor existen -> ErrInvalidOrganization
//  3. comprador != vendedor -> ErrSelfTrade
//  4. saldo del comprador >= costo total -> ErrInsufficientFunds
//  5. créditos del vendedor >= cantidad -> ErrInsufficientCredits
//
// Las filas de organización se bloquean en orden de ID para evitar deadlocks;
// el compare-and-set active->sold de la publicación es el ancla de atomicidad:
// dos liquidaciones concurrentes sobre la misma publicación producen
// exactamente un éxito.
func (uc *UseCase) SettleTrade(ctx context.Context, buyerOrgID, listingID string) (*dto.PurchaseResponse, error) {
	if buyerOrgID == "" {
		return nil, domain.ErrInvalidOrganization
	}
	var result *dto.PurchaseResponse
	err := uc.txRunner.RunMarketplace(ctx, func(
		orgRepo repository.OrganizationRepository,
		listingRepo repository.ListingRepository,
	) error {
		listing, err := listingRepo.GetByID(ctx, listingID)
		if err != nil {
			return err
		}
		if listing == nil {
			return domain.ErrNotFound
		}
		if listing.Status != entity.ListingStatusActive {
			return domain.ErrAlreadySold
		}
		sellerOrgID := listing.OrganizationID

		buyer, seller, err := lockPair(ctx, orgRepo, buyerOrgID, sellerOrgID)
		if err != nil {
			return err
		}
		if buyerOrgID == sellerOrgID {
			return domain.ErrSelfTrade
		}

		totalCost := listing.TotalCost()
		if buyer.VirtualBalance.LessThan(totalCost) {
			return domain.ErrInsufficientFunds
		}
		if seller.TotalCredits.LessThan(listing.CreditsAmount) {
			return domain.ErrInsufficientCredits
		}

		// Ancla de atomicidad: si otra liquidación ganó la carrera, el CAS falla
		if err := listingRepo.MarkSold(ctx, listing.ID); err != nil {
			return err
		}
		if err := orgRepo.AdjustBalances(ctx, buyerOrgID, totalCost.Neg(), listing.CreditsAmount); err != nil {
			return err
		}
		if err := orgRepo.AdjustBalances(ctx, sellerOrgID, totalCost, listing.CreditsAmount.Neg()); err != nil {
			return err
		}

		result = &dto.PurchaseResponse{
			ListingID:     listing.ID,
			SellerOrgID:   sellerOrgID,
			BuyerOrgID:    buyerOrgID,
			CreditsAmount: listing.CreditsAmount.String(),
			TotalCost:     totalCost.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockPair bloquea las filas de comprador y vendedor en orden de ID (evita
// deadlock entre liquidaciones cruzadas). Con IDs iguales bloquea una sola vez.
func lockPair(ctx context.Context, orgRepo repository.OrganizationRepository, buyerID, sellerID string) (buyer, seller *entity.Organization, err error) {
	if buyerID == sellerID {
		org, err := orgRepo.GetForUpdate(ctx, buyerID)
		if err != nil {
			return nil, nil, err
		}
		if org == nil {
			return nil, nil, domain.ErrInvalidOrganization
		}
		return org, org, nil
	}
	first, second := buyerID, sellerID
	if second < first {
		first, second = second, first
	}
	a, err := orgRepo.GetForUpdate(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := orgRepo.GetForUpdate(ctx, second)
	if err != nil {
		return nil, nil, err
	}
	if a == nil || b == nil {
		return nil, nil, domain.ErrInvalidOrganization
	}
	if a.ID == buyerID {
		return a, b, nil
	}
	return b, a, nil
}

// parsePositive parsea un monto decimal que debe ser estrictamente positivo.
func parsePositive(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if !d.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return d, nil
}

func toListingResponse(l *entity.Listing) *dto.ListingResponse {
	return &dto.ListingResponse{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		CreditsAmount:  l.CreditsAmount.String(),
		PricePerCredit: l.PricePerCredit.String(),
		Status:         l.Status,
		CreatedAt:      l.CreatedAt,
	}
}

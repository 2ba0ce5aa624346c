package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

var _ repository.ListingRepository = (*ListingRepo)(nil)

// ListingRepo implementación del puerto ListingRepository sobre el store en memoria.
type ListingRepo struct {
	s    *Store
	inTx bool
}

// NewListingRepository construye el adaptador de publicaciones sobre el store.
func NewListingRepository(s *Store) *ListingRepo {
	return &ListingRepo{s: s}
}

// Create persiste una nueva publicación.
func (r *ListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.listings[listing.ID] = *listing
	return nil
}

// GetByID obtiene una publicación por ID.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	l, ok := r.s.listings[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// ListActive lista las publicaciones activas, más recientes primero.
func (r *ListingRepo) ListActive(ctx context.Context) ([]*entity.Listing, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	var list []*entity.Listing
	for _, l := range r.s.listings {
		if l.Status == entity.ListingStatusActive {
			l := l
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// SumActiveCredits suma los créditos comprometidos en publicaciones activas del vendedor.
func (r *ListingRepo) SumActiveCredits(ctx context.Context, organizationID string) (decimal.Decimal, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	sum := decimal.Zero
	for _, l := range r.s.listings {
		if l.OrganizationID == organizationID && l.Status == entity.ListingStatusActive {
			sum = sum.Add(l.CreditsAmount)
		}
	}
	return sum, nil
}

// MarkSold compare-and-set active -> sold.
func (r *ListingRepo) MarkSold(ctx context.Context, id string) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	l, ok := r.s.listings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if l.Status != entity.ListingStatusActive {
		return domain.ErrAlreadySold
	}
	l.Status = entity.ListingStatusSold
	r.s.listings[id] = l
	return nil
}

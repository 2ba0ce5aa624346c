package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

var _ repository.ListingRepository = (*ListingRepo)(nil)

// ListingRepo implementación del puerto ListingRepository sobre PostgreSQL.
type ListingRepo struct {
	db querier
}

// NewListingRepository construye el adaptador de persistencia para publicaciones.
func NewListingRepository(db querier) *ListingRepo {
	return &ListingRepo{db: db}
}

// Create persiste una nueva publicación.
func (r *ListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (id, organization_id, credits_amount, price_per_credit, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		listing.ID, listing.OrganizationID, listing.CreditsAmount, listing.PricePerCredit,
		listing.Status, listing.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// GetByID obtiene una publicación por ID.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	query := `
		SELECT id, organization_id, credits_amount, price_per_credit, status, created_at
		FROM listings WHERE id = $1`
	var l entity.Listing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.OrganizationID, &l.CreditsAmount, &l.PricePerCredit, &l.Status, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &l, nil
}

// ListActive lista las publicaciones activas, más recientes primero.
func (r *ListingRepo) ListActive(ctx context.Context) ([]*entity.Listing, error) {
	query := `
		SELECT id, organization_id, credits_amount, price_per_credit, status, created_at
		FROM listings WHERE status = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, entity.ListingStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active listings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Listing
	for rows.Next() {
		var l entity.Listing
		if err := rows.Scan(&l.ID, &l.OrganizationID, &l.CreditsAmount, &l.PricePerCredit, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SumActiveCredits suma los créditos comprometidos en publicaciones activas del vendedor.
func (r *ListingRepo) SumActiveCredits(ctx context.Context, organizationID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(credits_amount), 0) FROM listings WHERE organization_id = $1 AND status = $2`,
		organizationID, entity.ListingStatusActive,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum active credits: %w", err)
	}
	return sum, nil
}

// MarkSold compare-and-set active -> sold. Cero filas afectadas distingue
// entre publicación inexistente y ya vendida.
func (r *ListingRepo) MarkSold(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE listings SET status = $2 WHERE id = $1 AND status = $3`,
		id, entity.ListingStatusSold, entity.ListingStatusActive,
	)
	if err != nil {
		return fmt.Errorf("mark listing sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadySold
	}
	return nil
}

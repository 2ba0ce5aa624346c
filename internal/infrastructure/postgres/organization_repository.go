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

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	db querier
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(db querier) *OrganizationRepo {
	return &OrganizationRepo{db: db}
}

const orgColumns = `id, name, description, address, virtual_balance, total_credits, status, COALESCE(rejection_reason, ''), created_at, updated_at`

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, description, address, virtual_balance, total_credits, status, rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`
	_, err := r.db.Exec(ctx, query,
		org.ID, org.Name, org.Description, org.Address, org.VirtualBalance, org.TotalCredits,
		org.Status, org.RejectionReason, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la organización bloqueando la fila (SELECT FOR UPDATE).
func (r *OrganizationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Organization, error) {
	return r.get(ctx, id, true)
}

func (r *OrganizationRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.Organization
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Description, &o.Address, &o.VirtualBalance, &o.TotalCredits,
		&o.Status, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// List devuelve todas las organizaciones, más recientes primero.
func (r *OrganizationRepo) List(ctx context.Context) ([]*entity.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Organization
	for rows.Next() {
		var o entity.Organization
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Description, &o.Address, &o.VirtualBalance, &o.TotalCredits,
			&o.Status, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus aplica la decisión de aprobación.
func (r *OrganizationRepo) UpdateStatus(ctx context.Context, id, status, rejectionReason string) error {
	query := `
		UPDATE organizations SET status = $2, rejection_reason = NULLIF($3, ''), updated_at = now()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, status, rejectionReason)
	if err != nil {
		return fmt.Errorf("update organization status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustBalances aplica los deltas sobre la fila bloqueada. La fila queda sin
// cambios si el resultado fuera negativo.
func (r *OrganizationRepo) AdjustBalances(ctx context.Context, id string, currencyDelta, creditsDelta decimal.Decimal) error {
	var balance, credits decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT virtual_balance, total_credits FROM organizations WHERE id = $1 FOR UPDATE`, id,
	).Scan(&balance, &credits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock organization: %w", err)
	}
	newBalance := balance.Add(currencyDelta)
	newCredits := credits.Add(creditsDelta)
	if newBalance.IsNegative() {
		return domain.ErrInsufficientFunds
	}
	if newCredits.IsNegative() {
		return domain.ErrInsufficientCredits
	}
	_, err = r.db.Exec(ctx,
		`UPDATE organizations SET virtual_balance = $2, total_credits = $3, updated_at = now() WHERE id = $1`,
		id, newBalance, newCredits,
	)
	if err != nil {
		return fmt.Errorf("adjust balances: %w", err)
	}
	return nil
}

// CreditCommute suma puntos de trayecto a TotalCredits.
func (r *OrganizationRepo) CreditCommute(ctx context.Context, id string, points decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE organizations SET total_credits = total_credits + $2, updated_at = now() WHERE id = $1`,
		id, points,
	)
	if err != nil {
		return fmt.Errorf("credit commute: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecovia/carbon-market-api/internal/application/approval"
	"github.com/ecovia/carbon-market-api/internal/application/commute"
	"github.com/ecovia/carbon-market-api/internal/application/marketplace"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la capa de aplicación.
var (
	_ approval.TxRunner    = (*TxRunner)(nil)
	_ commute.TxRunner     = (*TxRunner)(nil)
	_ marketplace.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunApproval inicia una transacción con repos de organizaciones y usuarios.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(tx querier) error {
		return fn(NewOrganizationRepository(tx), NewUserRepository(tx))
	})
}

// RunCommute inicia una transacción con repos de trayectos y organizaciones.
func (r *TxRunner) RunCommute(ctx context.Context, fn func(
	logRepo repository.CommuteLogRepository,
	orgRepo repository.OrganizationRepository,
) error) error {
	return r.run(ctx, func(tx querier) error {
		return fn(NewCommuteLogRepository(tx), NewOrganizationRepository(tx))
	})
}

// RunMarketplace inicia una transacción con repos de organizaciones y publicaciones.
func (r *TxRunner) RunMarketplace(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	listingRepo repository.ListingRepository,
) error) error {
	return r.run(ctx, func(tx querier) error {
		return fn(NewOrganizationRepository(tx), NewListingRepository(tx))
	})
}

// run inicia la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

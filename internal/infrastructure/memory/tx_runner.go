package memory

import (
	"context"

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

// TxRunner emula transacciones sobre el store en memoria: toma el lock de
// escritura durante todo el callback (serializa escritores) y revierte al
// snapshot si fn devuelve error. Todo o nada, como la variante PostgreSQL.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunApproval ejecuta fn con repos de organizaciones y usuarios bajo el lock.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(func() error {
		return fn(&OrganizationRepo{s: r.s, inTx: true}, &UserRepo{s: r.s, inTx: true})
	})
}

// RunCommute ejecuta fn con repos de trayectos y organizaciones bajo el lock.
func (r *TxRunner) RunCommute(ctx context.Context, fn func(
	logRepo repository.CommuteLogRepository,
	orgRepo repository.OrganizationRepository,
) error) error {
	return r.run(func() error {
		return fn(&CommuteLogRepo{s: r.s, inTx: true}, &OrganizationRepo{s: r.s, inTx: true})
	})
}

// RunMarketplace ejecuta fn con repos de organizaciones y publicaciones bajo el lock.
func (r *TxRunner) RunMarketplace(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	listingRepo repository.ListingRepository,
) error) error {
	return r.run(func() error {
		return fn(&OrganizationRepo{s: r.s, inTx: true}, &ListingRepo{s: r.s, inTx: true})
	})
}

func (r *TxRunner) run(fn func() error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

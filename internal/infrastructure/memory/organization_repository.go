package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre el
// store en memoria. Las escrituras transaccionales quedan serializadas por el
// lock del TxRunner, así que no hay bloqueo por fila: GetForUpdate equivale a
// GetByID.
type OrganizationRepo struct {
	s    *Store
	inTx bool
}

// NewOrganizationRepository construye el adaptador de organizaciones sobre el store.
func NewOrganizationRepository(s *Store) *OrganizationRepo {
	return &OrganizationRepo{s: s}
}

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.organizations[org.ID] = *org
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	o, ok := r.s.organizations[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// GetForUpdate obtiene la organización; el lock global ya serializa la transacción.
func (r *OrganizationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Organization, error) {
	return r.GetByID(ctx, id)
}

// List devuelve todas las organizaciones, más recientes primero.
func (r *OrganizationRepo) List(ctx context.Context) ([]*entity.Organization, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	var list []*entity.Organization
	for _, o := range r.s.organizations {
		o := o
		list = append(list, &o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// UpdateStatus aplica la decisión de aprobación.
func (r *OrganizationRepo) UpdateStatus(ctx context.Context, id, status, rejectionReason string) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	o, ok := r.s.organizations[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.RejectionReason = rejectionReason
	o.UpdatedAt = time.Now().UTC()
	r.s.organizations[id] = o
	return nil
}

// AdjustBalances aplica los deltas de moneda y créditos. La organización queda
// sin cambios si algún resultado fuera negativo.
func (r *OrganizationRepo) AdjustBalances(ctx context.Context, id string, currencyDelta, creditsDelta decimal.Decimal) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	o, ok := r.s.organizations[id]
	if !ok {
		return domain.ErrNotFound
	}
	newBalance := o.VirtualBalance.Add(currencyDelta)
	newCredits := o.TotalCredits.Add(creditsDelta)
	if newBalance.IsNegative() {
		return domain.ErrInsufficientFunds
	}
	if newCredits.IsNegative() {
		return domain.ErrInsufficientCredits
	}
	o.VirtualBalance = newBalance
	o.TotalCredits = newCredits
	o.UpdatedAt = time.Now().UTC()
	r.s.organizations[id] = o
	return nil
}

// CreditCommute suma puntos de trayecto a TotalCredits.
func (r *OrganizationRepo) CreditCommute(ctx context.Context, id string, points decimal.Decimal) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	o, ok := r.s.organizations[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.TotalCredits = o.TotalCredits.Add(points)
	o.UpdatedAt = time.Now().UTC()
	r.s.organizations[id] = o
	return nil
}

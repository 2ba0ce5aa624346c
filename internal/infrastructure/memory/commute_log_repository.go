package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

var _ repository.CommuteLogRepository = (*CommuteLogRepo)(nil)

// CommuteLogRepo implementación del puerto CommuteLogRepository sobre el store
// en memoria.
type CommuteLogRepo struct {
	s    *Store
	inTx bool
}

// NewCommuteLogRepository construye el adaptador de trayectos sobre el store.
func NewCommuteLogRepository(s *Store) *CommuteLogRepo {
	return &CommuteLogRepo{s: s}
}

// Create persiste el registro de trayecto. El par (usuario, día) es único.
func (r *CommuteLogRepo) Create(ctx context.Context, log *entity.CommuteLog) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, l := range r.s.commuteLogs {
		if l.UserID == log.UserID && l.Date.Equal(log.Date) {
			return domain.ErrDuplicateLog
		}
	}
	r.s.commuteLogs[log.ID] = *log
	return nil
}

// GetByUserAndDate obtiene el registro de un usuario para un día calendario.
func (r *CommuteLogRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*entity.CommuteLog, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	for _, l := range r.s.commuteLogs {
		if l.UserID == userID && l.Date.Equal(date) {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

// ListByUser lista los trayectos del usuario, más recientes primero.
func (r *CommuteLogRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CommuteLog, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	var list []*entity.CommuteLog
	for _, l := range r.s.commuteLogs {
		if l.UserID == userID {
			l := l
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

package repository

import (
	"context"
	"time"

	"github.com/ecovia/carbon-market-api/internal/domain/entity"
)

// CommuteLogRepository define el puerto de persistencia para CommuteLog.
// Los registros son inmutables: solo Create y lecturas.
type CommuteLogRepository interface {
	// Create persiste el registro. Devuelve ErrDuplicateLog si ya existe uno
	// para el mismo usuario y día calendario.
	Create(ctx context.Context, log *entity.CommuteLog) error
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*entity.CommuteLog, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CommuteLog, error)
}

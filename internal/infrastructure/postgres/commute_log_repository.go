package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

var _ repository.CommuteLogRepository = (*CommuteLogRepo)(nil)

// CommuteLogRepo implementación del puerto CommuteLogRepository sobre PostgreSQL.
// La tabla tiene UNIQUE (user_id, date): el día calendario duplicado se mapea
// a ErrDuplicateLog.
type CommuteLogRepo struct {
	db querier
}

// NewCommuteLogRepository construye el adaptador de persistencia para trayectos.
func NewCommuteLogRepository(db querier) *CommuteLogRepo {
	return &CommuteLogRepo{db: db}
}

// Create persiste el registro de trayecto.
func (r *CommuteLogRepo) Create(ctx context.Context, log *entity.CommuteLog) error {
	query := `
		INSERT INTO commute_logs (id, user_id, date, method, points_earned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		log.ID, log.UserID, log.Date, log.Method, log.PointsEarned, log.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLog
		}
		return fmt.Errorf("insert commute log: %w", err)
	}
	return nil
}

// GetByUserAndDate obtiene el registro de un usuario para un día calendario.
func (r *CommuteLogRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*entity.CommuteLog, error) {
	query := `
		SELECT id, user_id, date, method, points_earned, created_at
		FROM commute_logs WHERE user_id = $1 AND date = $2`
	var l entity.CommuteLog
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&l.ID, &l.UserID, &l.Date, &l.Method, &l.PointsEarned, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commute log: %w", err)
	}
	return &l, nil
}

// ListByUser lista los trayectos del usuario, más recientes primero.
func (r *CommuteLogRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CommuteLog, error) {
	query := `
		SELECT id, user_id, date, method, points_earned, created_at
		FROM commute_logs WHERE user_id = $1 ORDER BY date DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list commute logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.CommuteLog
	for rows.Next() {
		var l entity.CommuteLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.Method, &l.PointsEarned, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commute log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

package commute

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/domain"
	domcommute "github.com/ecovia/carbon-market-api/internal/domain/commute"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

// dateLayout formato de día calendario en la API.
const dateLayout = "2006-01-02"

// TxRunner ejecuta el callback dentro de una transacción con repos de
// trayectos y organizaciones atados a la misma transacción.
type TxRunner interface {
	RunCommute(ctx context.Context, fn func(
		logRepo repository.CommuteLogRepository,
		orgRepo repository.OrganizationRepository,
	) error) error
}

// UseCase registro de trayectos: calcula puntos y acredita a la organización
// del empleado en una sola transacción.
type UseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	logRepo  repository.CommuteLogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, userRepo repository.UserRepository, logRepo repository.CommuteLogRepository) *UseCase {
	return &UseCase{txRunner: txRunner, userRepo: userRepo, logRepo: logRepo}
}

// LogCommute registra el trayecto del día para el usuario autenticado.
// Requiere empleado aprobado con distancia configurada; rechaza un segundo
// registro del mismo día calendario con ErrDuplicateLog. Los puntos se
// calculan al crear y se suman a TotalCredits de la organización en la misma
// transacción que el registro.
func (uc *UseCase) LogCommute(ctx context.Context, userID string, in dto.LogCommuteRequest) (*dto.CommuteLogResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role != entity.RoleEmployee || user.Status != entity.UserStatusApproved {
		return nil, domain.ErrForbidden
	}
	if user.CommuteDistance == nil {
		return nil, domain.ErrDistanceNotSet
	}
	if !domcommute.ValidMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}

	day, err := parseDay(in.Date)
	if err != nil {
		return nil, err
	}

	points := domcommute.Points(*user.CommuteDistance, in.Method)
	now := time.Now()
	log := &entity.CommuteLog{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Date:         day,
		Method:       in.Method,
		PointsEarned: points,
		CreatedAt:    now,
	}

	err = uc.txRunner.RunCommute(ctx, func(
		logRepo repository.CommuteLogRepository,
		orgRepo repository.OrganizationRepository,
	) error {
		existing, err := logRepo.GetByUserAndDate(ctx, user.ID, day)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateLog
		}
		if err := logRepo.Create(ctx, log); err != nil {
			return err
		}
		if user.OrganizationID != "" {
			return orgRepo.CreditCommute(ctx, user.OrganizationID, points)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(log), nil
}

// ListByUser lista los trayectos del usuario, más recientes primero.
func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]*dto.CommuteLogResponse, error) {
	logs, err := uc.logRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CommuteLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toResponse(l))
	}
	return out, nil
}

// parseDay normaliza la fecha al día calendario en UTC; vacía = hoy.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return day, nil
}

func toResponse(l *entity.CommuteLog) *dto.CommuteLogResponse {
	return &dto.CommuteLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Date:         l.Date.Format(dateLayout),
		Method:       l.Method,
		PointsEarned: l.PointsEarned.String(),
		CreatedAt:    l.CreatedAt,
	}
}

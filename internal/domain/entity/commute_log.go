package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommuteLog registro inmutable de un trayecto diario de un empleado.
// Máximo un registro por usuario por día calendario.
type CommuteLog struct {
	ID           string
	UserID       string
	Date         time.Time // normalizada a medianoche UTC (día calendario)
	Method       string    // ver internal/domain/commute
	PointsEarned decimal.Decimal
	CreatedAt    time.Time
}

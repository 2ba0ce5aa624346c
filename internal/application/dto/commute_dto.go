package dto

import "time"

// LogCommuteRequest registra un trayecto del día.
type LogCommuteRequest struct {
	Date   string `json:"date"`   // YYYY-MM-DD; vacío = hoy
	Method string `json:"method"` // drove_alone, public_transport, carpool, work_from_home
}

// CommuteLogResponse registro de trayecto con los puntos calculados.
type CommuteLogResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Method       string    `json:"method"`
	PointsEarned string    `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

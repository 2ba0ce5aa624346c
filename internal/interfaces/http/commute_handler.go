package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecovia/carbon-market-api/internal/application/commute"
	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/domain"
)

// CommuteHandler maneja el registro y consulta de trayectos (protegido, employee).
type CommuteHandler struct {
	uc *commute.UseCase
}

// NewCommuteHandler construye el handler de trayectos.
func NewCommuteHandler(uc *commute.UseCase) *CommuteHandler {
	return &CommuteHandler{uc: uc}
}

// Log godoc
// @Summary      Registrar trayecto del día
// @Tags         commute-logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogCommuteRequest  true  "date (YYYY-MM-DD, vacío = hoy), method"
// @Success      201   {object}  dto.CommuteLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/commute-logs [post]
func (h *CommuteHandler) Log(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.LogCommuteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	log, err := h.uc.LogCommute(c.Context(), userID, in)
	if err != nil {
		if err == domain.ErrDuplicateLog {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_LOG", Message: "ya existe un registro para ese día"})
		}
		if err == domain.ErrDistanceNotSet {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DISTANCE_NOT_SET", Message: "configura tu distancia de trayecto primero"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo empleados aprobados registran trayectos"})
		}
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "method o date inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

// List godoc
// @Summary      Listar trayectos del usuario autenticado
// @Tags         commute-logs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CommuteLogResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/commute-logs [get]
func (h *CommuteHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	logs, err := h.uc.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(logs)
}

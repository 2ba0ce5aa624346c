package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecovia/carbon-market-api/internal/application/approval"
	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/domain"
)

// UserHandler maneja la aprobación de empleados por el org_admin.
type UserHandler struct {
	uc *approval.UseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *approval.UseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Approve godoc
// @Summary      Aprobar empleado de la propia organización
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/approve [patch]
func (h *UserHandler) Approve(c *fiber.Ctx) error {
	user, err := h.uc.ApproveEmployee(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el usuario no pertenece a tu organización"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(user)
}

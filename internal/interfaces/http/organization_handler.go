package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecovia/carbon-market-api/internal/application/approval"
	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/application/report"
	"github.com/ecovia/carbon-market-api/internal/domain"
)

// OrganizationHandler maneja registro, aprobación y certificado de organizaciones.
type OrganizationHandler struct {
	uc       *approval.UseCase
	reportUC *report.UseCase
}

// NewOrganizationHandler construye el handler de organizaciones.
func NewOrganizationHandler(uc *approval.UseCase, reportUC *report.UseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc, reportUC: reportUC}
}

// Create godoc
// @Summary      Registrar organización (queda pending)
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "name, description, address"
// @Success      201   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	org, err := h.uc.RegisterOrganization(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y address son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(org)
}

// List godoc
// @Summary      Listar organizaciones (panel del system_admin)
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.OrganizationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	orgs, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(orgs)
}

// GetByID godoc
// @Summary      Obtener organización por ID
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Organization ID"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	org, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(org)
}

// Approve godoc
// @Summary      Aprobar organización pendiente
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Organization ID"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id}/approve [patch]
func (h *OrganizationHandler) Approve(c *fiber.Ctx) error {
	org, err := h.uc.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return h.decisionError(c, err)
	}
	return c.JSON(org)
}

// Reject godoc
// @Summary      Rechazar organización pendiente (razón obligatoria)
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Organization ID"
// @Param        body  body  dto.RejectOrganizationRequest  true  "reason"
// @Success      200   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/organizations/{id}/reject [patch]
func (h *OrganizationHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	org, err := h.uc.Reject(c.Context(), c.Params("id"), in.Reason)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es requerido"})
		}
		return h.decisionError(c, err)
	}
	return c.JSON(org)
}

// Certificate godoc
// @Summary      Certificado PDF de créditos de carbono
// @Tags         organizations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Organization ID"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id}/certificate [get]
func (h *OrganizationHandler) Certificate(c *fiber.Ctx) error {
	pdf, err := h.reportUC.CreditCertificate(c.Context(), GetRole(c), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin acceso al certificado de esta organización"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
		}
		if err == domain.ErrInvalidOrganization {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_APPROVED", Message: "la organización no está aprobada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="carbon-credit-certificate.pdf"`)
	return c.Send(pdf)
}

func (h *OrganizationHandler) decisionError(c *fiber.Ctx, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
	}
	if err == domain.ErrAlreadyDecided {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_DECIDED", Message: "la organización ya fue aprobada o rechazada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

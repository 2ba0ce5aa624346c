package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecovia/carbon-market-api/internal/application/dto"
	"github.com/ecovia/carbon-market-api/internal/application/marketplace"
	"github.com/ecovia/carbon-market-api/internal/domain"
)

// MarketplaceHandler maneja publicaciones y compras del mercado de créditos.
type MarketplaceHandler struct {
	uc *marketplace.UseCase
}

// NewMarketplaceHandler construye el handler del mercado.
func NewMarketplaceHandler(uc *marketplace.UseCase) *MarketplaceHandler {
	return &MarketplaceHandler{uc: uc}
}

// CreateListing godoc
// @Summary      Publicar créditos en venta
// @Tags         marketplace
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateListingRequest  true  "credits_amount, price_per_credit (decimales como string)"
// @Success      201   {object}  dto.ListingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/listings [post]
func (h *MarketplaceHandler) CreateListing(c *fiber.Ctx) error {
	var in dto.CreateListingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	listing, err := h.uc.CreateListing(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		if err == domain.ErrInsufficientCredits {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_CREDITS", Message: "créditos insuficientes (netos de publicaciones activas)"})
		}
		if err == domain.ErrInvalidOrganization {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_ORGANIZATION", Message: "el usuario no pertenece a una organización válida"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "credits_amount y price_per_credit deben ser decimales positivos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// ListActive godoc
// @Summary      Listar publicaciones activas
// @Tags         marketplace
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ListingResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/listings [get]
func (h *MarketplaceHandler) ListActive(c *fiber.Ctx) error {
	listings, err := h.uc.ListActive(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(listings)
}

// Purchase godoc
// @Summary      Comprar una publicación (liquidación atómica)
// @Tags         marketplace
// @Security     Bearer
// @Produce      json
// @Param        listingId  path  string  true  "Listing ID"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{listingId} [post]
func (h *MarketplaceHandler) Purchase(c *fiber.Ctx) error {
	out, err := h.uc.SettleTrade(c.Context(), GetOrganizationID(c), c.Params("listingId"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "publicación no encontrada"})
		}
		if err == domain.ErrAlreadySold {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_SOLD", Message: "la publicación ya fue vendida"})
		}
		if err == domain.ErrSelfTrade {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SELF_TRADE", Message: "no puedes comprar tu propia publicación"})
		}
		if err == domain.ErrInsufficientFunds {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_FUNDS", Message: "saldo virtual insuficiente"})
		}
		if err == domain.ErrInsufficientCredits {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_CREDITS", Message: "el vendedor ya no tiene los créditos"})
		}
		if err == domain.ErrInvalidOrganization {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_ORGANIZATION", Message: "comprador o vendedor inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

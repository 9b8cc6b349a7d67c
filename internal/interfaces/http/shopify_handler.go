package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/application/shopify"
	"github.com/gfarias/comercial-api/internal/domain"
)

// ShopifyHandler expone la sincronización con la tienda online (protegido).
type ShopifyHandler struct {
	uc *shopify.SyncUseCase
}

// NewShopifyHandler construye el handler.
func NewShopifyHandler(uc *shopify.SyncUseCase) *ShopifyHandler {
	return &ShopifyHandler{uc: uc}
}

// ListCollections godoc
// @Summary      Listar colecciones de la tienda
// @Tags         shopify
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   shopify.Collection
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shopify/collections [get]
func (h *ShopifyHandler) ListCollections(c *fiber.Ctx) error {
	out, err := h.uc.ListCollections(c.UserContext())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// PushProduct godoc
// @Summary      Publicar un artículo en la tienda
// @Tags         shopify
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shopify/products/{id}/push [post]
func (h *ShopifyHandler) PushProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.PushProduct(c.UserContext(), id); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PushCategory godoc
// @Summary      Publicar los artículos de una categoría en la tienda
// @Description  Publica todos los artículos de la categoría y devuelve la cantidad
//               procesada. Ante la primera falla se detiene e informa cuántos subió.
// @Tags         shopify
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  map[string]int
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shopify/categories/{id}/push [post]
func (h *ShopifyHandler) PushCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pushed, err := h.uc.PushCategory(c.UserContext(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"pushed": pushed})
}

func (h *ShopifyHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHOPIFY_DISABLED", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SHOPIFY_ERROR", Message: err.Error()})
	}
}

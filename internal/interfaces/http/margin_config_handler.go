package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/application/usecase"
	"github.com/gfarias/comercial-api/internal/domain"
)

// MarginConfigHandler maneja los márgenes globales de precios (solo admin).
type MarginConfigHandler struct {
	uc *usecase.MarginConfigUseCase
}

// NewMarginConfigHandler construye el handler.
func NewMarginConfigHandler(uc *usecase.MarginConfigUseCase) *MarginConfigHandler {
	return &MarginConfigHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener márgenes de precios
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarginConfigResponse
// @Router       /api/config/margins [get]
func (h *MarginConfigHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar márgenes de precios
// @Description  Los márgenes son multiplicadores sobre el costo y deben ser >= 1.
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateMarginConfigRequest  true  "Nuevos márgenes"
// @Success      200   {object}  dto.MarginConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config/margins [put]
func (h *MarginConfigHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMarginConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

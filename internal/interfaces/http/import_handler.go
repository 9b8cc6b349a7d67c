package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/application/importer"
	"github.com/gfarias/comercial-api/internal/domain"
)

// maxImportSize limita el CSV de lista de precios a 10 MB.
const maxImportSize = 10 << 20

// ImportHandler maneja la importación de listas de precios (protegido).
type ImportHandler struct {
	uc *importer.PriceImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.PriceImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Preview godoc
// @Summary      Previsualizar importación de lista de precios
// @Description  Acepta el CSV como multipart (campo "file") o como cuerpo crudo.
//               No modifica datos: devuelve el plan de cambios fila por fila.
// @Tags         import
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  false  "CSV de lista de precios"
// @Success      200   {object}  dto.ImportPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/price-imports/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	data, err := h.readCSV(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	out, err := h.uc.Preview(c.UserContext(), data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Aplicar importación de lista de precios
// @Description  Aplica las filas confirmadas del preview. Las filas que fallan
//               no frenan al resto; el resultado detalla cada una.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportCommitRequest  true  "Filas a aplicar"
// @Success      200   {object}  dto.ImportCommitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/price-imports/commit [post]
func (h *ImportHandler) Commit(c *fiber.Ctx) error {
	var in dto.ImportCommitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rows es requerido"})
	}
	out, err := h.uc.Commit(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// readCSV obtiene los bytes del CSV desde multipart o del cuerpo crudo.
func (h *ImportHandler) readCSV(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxImportSize {
			return nil, errors.New("el archivo supera el tamaño máximo permitido")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImportSize))
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, errors.New("se requiere un archivo CSV")
	}
	if len(body) > maxImportSize {
		return nil, errors.New("el archivo supera el tamaño máximo permitido")
	}
	data := make([]byte, len(body))
	copy(data, body)
	return data, nil
}

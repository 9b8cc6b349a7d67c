package importer

import (
	"context"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/domain"
	"github.com/gfarias/comercial-api/internal/domain/pricing"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// PriceImportUseCase orquesta una sesión de importación de precios: vista
// previa (pura) y commit (efectos). El snapshot del catálogo y los márgenes
// se leen al armar la vista previa; el commit recibe las filas que el
// operador aprobó, con sus ediciones.
type PriceImportUseCase struct {
	productRepo repository.ProductRepository
	marginRepo  repository.MarginConfigRepository
}

// NewPriceImportUseCase construye el caso de uso.
func NewPriceImportUseCase(productRepo repository.ProductRepository, marginRepo repository.MarginConfigRepository) *PriceImportUseCase {
	return &PriceImportUseCase{productRepo: productRepo, marginRepo: marginRepo}
}

// Preview parsea el CSV contra el catálogo vigente. Errores estructurales
// del archivo se devuelven como domain.ErrInvalidInput envuelto para que el
// handler los traduzca a 400 con mensaje visible.
func (uc *PriceImportUseCase) Preview(ctx context.Context, csvData []byte) (*dto.ImportPreviewResponse, error) {
	cfg, err := uc.marginRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer configuración de márgenes: %w", err)
	}
	margins := pricing.Margins{Wholesale: cfg.WholesaleMargin, Retail: cfg.RetailMargin}
	if !margins.Valid() {
		return nil, fmt.Errorf("%w: márgenes no configurados", domain.ErrConflict)
	}

	snapshot, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	rows, err := Parse(normalizeEncoding(csvData), snapshot, margins)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	out := &dto.ImportPreviewResponse{
		Rows:      make([]dto.ImportRowDTO, 0, len(rows)),
		TotalRows: len(rows),
		Wholesale: cfg.WholesaleMargin,
		Retail:    cfg.RetailMargin,
	}
	for _, r := range rows {
		if r.Found {
			out.FoundRows++
		}
		out.Rows = append(out.Rows, dto.ImportRowDTO{
			ProductCode:       r.Code,
			ProductName:       r.Name,
			NewPurchaseCost:   r.PurchaseCost,
			NewWholesalePrice: r.WholesalePrice,
			NewRetailPrice:    r.RetailPrice,
			Found:             r.Found,
			ProductID:         r.ProductID,
		})
	}
	return out, nil
}

// Commit aplica las filas aprobadas en orden. El reporte parcial se devuelve
// también cuando hay error, para informar cuántas actualizaciones quedaron
// aplicadas antes del corte.
func (uc *PriceImportUseCase) Commit(in dto.ImportCommitRequest) (*dto.ImportCommitResponse, error) {
	rows := make([]Row, 0, len(in.Rows))
	for _, r := range in.Rows {
		rows = append(rows, Row{
			Code:           r.ProductCode,
			Name:           r.ProductName,
			PurchaseCost:   r.NewPurchaseCost,
			WholesalePrice: r.NewWholesalePrice,
			RetailPrice:    r.NewRetailPrice,
			Found:          r.Found && r.ProductID != "",
			ProductID:      r.ProductID,
		})
	}

	report, err := Commit(rows, uc.productRepo)
	resp := &dto.ImportCommitResponse{
		Attempted:  report.Attempted,
		Applied:    report.Applied,
		FailedCode: report.FailedCode,
	}
	if err != nil {
		resp.Message = fmt.Sprintf("actualización interrumpida en %s: %d de %d aplicadas", report.FailedCode, report.Applied, report.Attempted)
		return resp, err
	}
	resp.Message = fmt.Sprintf("%d artículos actualizados", report.Applied)
	return resp, nil
}

// normalizeEncoding convierte a UTF-8 los listados exportados desde Windows
// (Excel suele guardar CSV en Windows-1252, con ° y acentos fuera de UTF-8).
func normalizeEncoding(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return data
	}
	return decoded
}

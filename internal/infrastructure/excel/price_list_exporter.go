// Package excel genera la lista de precios del catálogo en formato XLSX.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gfarias/comercial-api/internal/domain/entity"
)

// PriceListExporter arma el XLSX de la lista de precios.
type PriceListExporter struct{}

// NewPriceListExporter construye el exportador.
func NewPriceListExporter() *PriceListExporter { return &PriceListExporter{} }

const sheetName = "Lista de precios"

// Export genera el archivo con una fila por artículo del catálogo.
func (e *PriceListExporter) Export(products []*entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headers := []string{"Código", "Artículo", "Costo", "Precio mayorista", "Precio minorista", "Stock"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "F1", headerStyle)
	}

	for i, p := range products {
		rowNum := i + 2
		values := []any{
			p.Code,
			p.Name,
			p.PurchaseCost.InexactFloat64(),
			p.WholesalePrice.InexactFloat64(),
			p.RetailPrice.InexactFloat64(),
			p.CurrentStock,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: escribir fila %d: %w", rowNum, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 14)
	_ = f.SetColWidth(sheetName, "B", "B", 40)
	_ = f.SetColWidth(sheetName, "C", "F", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

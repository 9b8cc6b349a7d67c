// Package importer implementa la conciliación de listas de precios de
// proveedores contra el catálogo: parseo del CSV, matching por código,
// derivación de precios por márgenes y aplicación secuencial de los cambios.
//
// Parse es puro: trabaja sobre un snapshot del catálogo pasado por el caller
// (quien es responsable de refrescarlo antes de iniciar la sesión) y no toca
// el backend. Commit es el único paso con efectos.
package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/pricing"
)

// Errores estructurales del archivo: abortan el parseo sin producir filas.
var (
	// ErrEmptyFile el archivo no tiene encabezado más al menos una fila de datos.
	ErrEmptyFile = errors.New("importer: el archivo debe tener un encabezado y al menos una fila")
	// ErrMissingColumns el encabezado no trae las columnas codigo/code y precio/price.
	ErrMissingColumns = errors.New("importer: faltan las columnas requeridas (codigo/code y precio/price)")
)

// Row es una fila propuesta de actualización de precios, transitoria a la
// sesión de importación. Found=false implica ProductID vacío y exclusión
// del commit.
type Row struct {
	Code           string
	Name           string
	PurchaseCost   decimal.Decimal
	WholesalePrice decimal.Decimal
	RetailPrice    decimal.Decimal
	Found          bool
	ProductID      string
}

// nombres aceptados (en minúsculas) para las columnas requeridas.
var (
	codeHeaders  = map[string]bool{"codigo": true, "código": true, "code": true}
	priceHeaders = map[string]bool{"precio": true, "price": true}
)

// Parse convierte el CSV crudo en filas propuestas contra el snapshot del
// catálogo. El delimitador es coma o punto y coma (split combinado por
// línea). Las filas con código vacío o precio no numérico se descartan en
// silencio: las listas parciales de proveedores son esperables.
func Parse(data []byte, snapshot []*entity.Product, margins pricing.Margins) ([]Row, error) {
	lines := nonEmptyLines(string(data))
	if len(lines) < 2 {
		return nil, ErrEmptyFile
	}

	codeIdx, priceIdx, err := locateColumns(lines[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line)
		if codeIdx >= len(fields) || priceIdx >= len(fields) {
			continue
		}
		code := fields[codeIdx]
		if code == "" {
			continue
		}
		price, err := decimal.NewFromString(fields[priceIdx])
		if err != nil {
			continue
		}

		row := Row{
			Code:           code,
			PurchaseCost:   price,
			WholesalePrice: margins.WholesalePrice(price),
			RetailPrice:    margins.RetailPrice(price),
		}
		// Matching exacto contra el snapshot; a lo sumo un código por
		// artículo, el primero que matchee gana.
		for _, p := range snapshot {
			if p.Code == code {
				row.Found = true
				row.ProductID = p.ID
				row.Name = p.Name
				break
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PriceUpdater es el puerto de salida del commit: una actualización de
// precios por artículo. Lo satisface el ProductRepository de postgres.
type PriceUpdater interface {
	UpdatePrices(productID string, purchaseCost, wholesalePrice, retailPrice decimal.Decimal) error
}

// CommitReport resultado del commit secuencial.
type CommitReport struct {
	Attempted  int    // filas con Found=true al momento del commit
	Applied    int    // actualizaciones que llegaron al backend
	FailedCode string // código de la fila que cortó la cola, vacío si todo ok
}

// Commit aplica las filas encontradas en orden original, una actualización
// por artículo. A la primera falla abandona la cola y devuelve el reporte
// parcial junto con el error: las actualizaciones ya aplicadas no se
// revierten (no hay transacción entre artículos).
func Commit(rows []Row, updater PriceUpdater) (*CommitReport, error) {
	report := &CommitReport{}
	for _, r := range rows {
		if r.Found {
			report.Attempted++
		}
	}
	for _, r := range rows {
		if !r.Found {
			continue
		}
		if err := updater.UpdatePrices(r.ProductID, r.PurchaseCost, r.WholesalePrice, r.RetailPrice); err != nil {
			report.FailedCode = r.Code
			return report, fmt.Errorf("importer: actualizar %s: %w", r.Code, err)
		}
		report.Applied++
	}
	return report, nil
}

// nonEmptyLines separa el archivo en líneas recortadas, descartando vacías.
func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// splitFields separa una línea por el set combinado de delimitadores y
// recorta cada campo. Conserva campos vacíos para no desalinear columnas.
func splitFields(line string) []string {
	fields := strings.Split(strings.ReplaceAll(line, ";", ","), ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// locateColumns ubica las columnas requeridas en el encabezado, sin importar
// mayúsculas ni orden.
func locateColumns(header string) (codeIdx, priceIdx int, err error) {
	codeIdx, priceIdx = -1, -1
	for i, h := range splitFields(header) {
		switch {
		case codeHeaders[strings.ToLower(h)] && codeIdx == -1:
			codeIdx = i
		case priceHeaders[strings.ToLower(h)] && priceIdx == -1:
			priceIdx = i
		}
	}
	if codeIdx == -1 || priceIdx == -1 {
		return 0, 0, ErrMissingColumns
	}
	return codeIdx, priceIdx, nil
}

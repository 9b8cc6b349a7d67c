// Package pdf genera la representación gráfica del comprobante de venta
// (Factura B/C según RG 4291 de AFIP).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + CUIT  │  Tipo y N° de comprobante    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + CUIT/Consumidor Final                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Código | Descripción | P.Unit | Subtotal      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  FOOTER AFIP: CAE + vencimiento + QR                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gfarias/comercial-api/internal/application/billing"
	"github.com/gfarias/comercial-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.SalePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.SalePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSalePDF genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalePDF(_ context.Context, sale *entity.Sale, client *entity.Client, issuerCUIT string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(voucherLabel(sale.VoucherType), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, issuerCUIT))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range afipFooterRows(sale, issuerCUIT) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func voucherLabel(voucherType int) string {
	switch voucherType {
	case entity.VoucherTypeFacturaB:
		return "FACTURA B"
	case entity.VoucherTypeFacturaC:
		return "FACTURA C"
	default:
		return fmt.Sprintf("COMPROBANTE %d", voucherType)
	}
}

// headerRow: emisor (izq) y tipo + número de comprobante (der).
func headerRow(sale *entity.Sale, issuerCUIT string) core.Row {
	number := fmt.Sprintf("%04d-%08d", sale.PuntoVenta, sale.Number)
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Comercial Farias", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUIT: "+issuerCUIT, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(voucherLabel(sale.VoucherType), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
			text.New("Fecha: "+sale.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: receptor del comprobante.
func clientRow(client *entity.Client) core.Row {
	doc := "Consumidor Final"
	if client.CUIT != "" {
		doc = "CUIT: " + client.CUIT
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", client.Name, doc), props.Text{
				Size: 9, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Descripción", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func tableItemRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.Code,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$ "+it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$ "+it.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalRow(sale *entity.Sale) core.Row {
	return row.New(12).Add(
		col.New(7),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New("$ "+sale.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// afipFooterRows: CAE + vencimiento + QR de verificación (RG 4892).
func afipFooterRows(sale *entity.Sale, issuerCUIT string) []core.Row {
	if sale.CAE == "" {
		return []core.Row{
			row.New(10).Add(col.New(12).Add(
				text.New("Comprobante pendiente de autorización AFIP — no válido como factura", props.Text{
					Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorGray, Top: 2,
				}),
			)),
		}
	}

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("CAE: %s    Vto. CAE: %s",
				sale.CAE, sale.CAEDueDate.Format("02/01/2006")), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)),
	}

	if qr := buildQRData(sale, issuerCUIT); qr != "" {
		rows = append(rows, row.New(40).Add(
			col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
			col.New(8).Add(
				text.New("Escaneá el código QR para verificar\neste comprobante en afip.gob.ar", props.Text{
					Size: 8, Top: 6, Left: 3, Color: colorGray,
				}),
			),
		))
	}
	return rows
}

// buildQRData arma la URL del QR fiscal (afip.gob.ar/fe/qr) con el payload
// JSON en Base64 que define la RG 4892.
func buildQRData(sale *entity.Sale, issuerCUIT string) string {
	payload := map[string]any{
		"ver":        1,
		"fecha":      sale.Date.Format("2006-01-02"),
		"cuit":       strings.ReplaceAll(issuerCUIT, "-", ""),
		"ptoVta":     sale.PuntoVenta,
		"tipoCmp":    sale.VoucherType,
		"nroCmp":     sale.Number,
		"importe":    sale.Total.InexactFloat64(),
		"moneda":     "PES",
		"ctz":        1,
		"tipoCodAut": "E",
		"codAut":     sale.CAE,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return "https://www.afip.gob.ar/fe/qr/?p=" + base64.StdEncoding.EncodeToString(raw)
}

package importer_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfarias/comercial-api/internal/application/importer"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testMargins() pricing.Margins {
	return pricing.Margins{Wholesale: dec("1.6"), Retail: dec("1.8")}
}

func testCatalog() []*entity.Product {
	return []*entity.Product{
		{ID: "p-1", Code: "ABC123", Name: "Aceite 900ml"},
		{ID: "p-2", Code: "DEF456", Name: "Harina 000 1kg"},
	}
}

// TestParse_CodigoEncontradoYNoEncontrado reproduce el escenario base: dos
// filas, una matchea el catálogo y la otra no. Ambas derivan precios, pero
// solo la encontrada lleva ProductID.
func TestParse_CodigoEncontradoYNoEncontrado(t *testing.T) {
	csv := "codigo,precio\nABC123,100\nXYZ999,50"

	rows, err := importer.Parse([]byte(csv), testCatalog(), testMargins())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Found)
	assert.Equal(t, "p-1", rows[0].ProductID)
	assert.Equal(t, "Aceite 900ml", rows[0].Name)
	assert.True(t, dec("160.00").Equal(rows[0].WholesalePrice), "100 * 1.6")
	assert.True(t, dec("180.00").Equal(rows[0].RetailPrice), "100 * 1.8")

	assert.False(t, rows[1].Found)
	assert.Empty(t, rows[1].ProductID, "Found=false implica ProductID vacío")
	assert.True(t, dec("80.00").Equal(rows[1].WholesalePrice), "los precios se derivan igual aunque no matchee")
	assert.True(t, dec("90.00").Equal(rows[1].RetailPrice))
}

// TestParse_DelimitadorPuntoYComa acepta encabezado en inglés y ';'.
func TestParse_DelimitadorPuntoYComa(t *testing.T) {
	csv := "code;price\nA1;99.99"

	rows, err := importer.Parse([]byte(csv), nil, testMargins())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].Code)
	assert.True(t, dec("99.99").Equal(rows[0].PurchaseCost))
}

// TestParse_ColumnasEnCualquierOrden el orden y las mayúsculas del encabezado
// no importan; las columnas extra se ignoran.
func TestParse_ColumnasEnCualquierOrden(t *testing.T) {
	csv := "Descripcion,PRECIO,Codigo\nAceite de girasol,100,ABC123"

	rows, err := importer.Parse([]byte(csv), testCatalog(), testMargins())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ABC123", rows[0].Code)
	assert.True(t, rows[0].Found)
}

func TestParse_ColumnaFaltante(t *testing.T) {
	csv := "codigo,descripcion\nABC123,Aceite"

	rows, err := importer.Parse([]byte(csv), testCatalog(), testMargins())
	assert.ErrorIs(t, err, importer.ErrMissingColumns)
	assert.Nil(t, rows, "un error estructural no produce filas")
}

func TestParse_ArchivoSinDatos(t *testing.T) {
	_, err := importer.Parse([]byte("codigo,precio\n\n\n"), nil, testMargins())
	assert.ErrorIs(t, err, importer.ErrEmptyFile)

	_, err = importer.Parse([]byte(""), nil, testMargins())
	assert.ErrorIs(t, err, importer.ErrEmptyFile)
}

// TestParse_FilasInvalidasSeDescartan código vacío o precio no numérico
// descartan la fila en silencio; el resto del archivo se procesa igual.
func TestParse_FilasInvalidasSeDescartan(t *testing.T) {
	csv := "codigo,precio\n,100\nABC123,no-es-numero\nDEF456,200\nABC123,"

	rows, err := importer.Parse([]byte(csv), testCatalog(), testMargins())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "DEF456", rows[0].Code)
}

// TestParse_Idempotente parsear dos veces el mismo archivo con el mismo
// snapshot produce listas idénticas.
func TestParse_Idempotente(t *testing.T) {
	csv := "codigo,precio\nABC123,100\nXYZ999,50\nDEF456,33.33"

	rows1, err1 := importer.Parse([]byte(csv), testCatalog(), testMargins())
	rows2, err2 := importer.Parse([]byte(csv), testCatalog(), testMargins())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, rows1, rows2)
}

// ── Commit ────────────────────────────────────────────────────────────────────

type updateCall struct {
	productID string
	purchase  decimal.Decimal
	wholesale decimal.Decimal
	retail    decimal.Decimal
}

// fakeUpdater registra las actualizaciones y puede fallar en un artículo dado.
type fakeUpdater struct {
	calls  []updateCall
	failOn string // productID que dispara el error, vacío = nunca falla
}

func (f *fakeUpdater) UpdatePrices(productID string, purchase, wholesale, retail decimal.Decimal) error {
	if productID == f.failOn {
		return errors.New("backend caído")
	}
	f.calls = append(f.calls, updateCall{productID, purchase, wholesale, retail})
	return nil
}

// TestCommit_SoloFilasEncontradasEnOrden el commit envía exactamente las
// filas con Found=true, en el orden original, con los valores editados.
func TestCommit_SoloFilasEncontradasEnOrden(t *testing.T) {
	rows := []importer.Row{
		{Code: "ABC123", Found: true, ProductID: "p-1", PurchaseCost: dec("100"), WholesalePrice: dec("155"), RetailPrice: dec("180")},
		{Code: "XYZ999", Found: false, PurchaseCost: dec("50")},
		{Code: "DEF456", Found: true, ProductID: "p-2", PurchaseCost: dec("200"), WholesalePrice: dec("320"), RetailPrice: dec("360")},
	}
	u := &fakeUpdater{}

	report, err := importer.Commit(rows, u)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 2, report.Applied)
	require.Len(t, u.calls, 2)
	assert.Equal(t, "p-1", u.calls[0].productID)
	assert.True(t, dec("155").Equal(u.calls[0].wholesale), "se envía el precio editado, no el derivado")
	assert.Equal(t, "p-2", u.calls[1].productID)
}

// TestCommit_CortaEnPrimeraFalla con 3 filas encontradas y falla en la 2.ª:
// la 1.ª queda aplicada, la 3.ª no se intenta, y el reporte lo refleja.
func TestCommit_CortaEnPrimeraFalla(t *testing.T) {
	rows := []importer.Row{
		{Code: "A", Found: true, ProductID: "p-1", PurchaseCost: dec("10")},
		{Code: "B", Found: true, ProductID: "p-2", PurchaseCost: dec("20")},
		{Code: "C", Found: true, ProductID: "p-3", PurchaseCost: dec("30")},
	}
	u := &fakeUpdater{failOn: "p-2"}

	report, err := importer.Commit(rows, u)
	require.Error(t, err)

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 1, report.Applied, "la primera actualización queda aplicada, sin reversa")
	assert.Equal(t, "B", report.FailedCode)
	require.Len(t, u.calls, 1)
	assert.Equal(t, "p-1", u.calls[0].productID)
}

func TestCommit_SinFilasEncontradas(t *testing.T) {
	rows := []importer.Row{{Code: "X", Found: false}}
	u := &fakeUpdater{}

	report, err := importer.Commit(rows, u)
	require.NoError(t, err)
	assert.Zero(t, report.Attempted)
	assert.Zero(t, report.Applied)
	assert.Empty(t, u.calls)
}

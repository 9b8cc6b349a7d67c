package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gfarias/comercial-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestApply_MargenesTipicos(t *testing.T) {
	m := pricing.Margins{Wholesale: dec("1.6"), Retail: dec("1.8")}

	assert.True(t, dec("160.00").Equal(m.WholesalePrice(dec("100"))),
		"100 * 1.6 debe dar 160.00")
	assert.True(t, dec("180.00").Equal(m.RetailPrice(dec("100"))),
		"100 * 1.8 debe dar 180.00")
}

// TestApply_RedondeoMitadArriba verifica el redondeo a 2 decimales con la
// mitad hacia arriba: 33.33 * 1.5 = 49.995 -> 50.00.
func TestApply_RedondeoMitadArriba(t *testing.T) {
	got := pricing.Apply(dec("33.33"), dec("1.5"))
	assert.True(t, dec("50.00").Equal(got), "49.995 debe redondear a 50.00, dio %s", got)

	got = pricing.Apply(dec("99.99"), dec("1.6"))
	assert.True(t, dec("159.98").Equal(got), "159.984 debe truncar a 159.98, dio %s", got)
}

func TestMargins_Valid(t *testing.T) {
	assert.True(t, pricing.Margins{Wholesale: dec("1.6"), Retail: dec("1.8")}.Valid())
	assert.False(t, pricing.Margins{Wholesale: decimal.Zero, Retail: dec("1.8")}.Valid())
	assert.False(t, pricing.Margins{}.Valid())
}

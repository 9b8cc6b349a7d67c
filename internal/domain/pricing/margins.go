package pricing

import "github.com/shopspring/decimal"

// Margins son los multiplicadores de precio (servicio de dominio).
// PrecioMayorista = round(Costo * Wholesale, 2); ídem minorista.
type Margins struct {
	Wholesale decimal.Decimal
	Retail    decimal.Decimal
}

// Valid informa si ambos multiplicadores son positivos.
func (m Margins) Valid() bool {
	return m.Wholesale.IsPositive() && m.Retail.IsPositive()
}

// Apply deriva un precio de venta aplicando el multiplicador al costo base,
// redondeado a 2 decimales (mitad hacia arriba para montos positivos).
func Apply(cost, multiplier decimal.Decimal) decimal.Decimal {
	return cost.Mul(multiplier).Round(2)
}

// WholesalePrice deriva el precio mayorista desde el costo de compra.
func (m Margins) WholesalePrice(cost decimal.Decimal) decimal.Decimal {
	return Apply(cost, m.Wholesale)
}

// RetailPrice deriva el precio minorista desde el costo de compra.
func (m Margins) RetailPrice(cost decimal.Decimal) decimal.Decimal {
	return Apply(cost, m.Retail)
}

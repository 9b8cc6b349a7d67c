package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarginConfig son los multiplicadores que derivan los precios de venta a
// partir del costo de compra (ej: 1.6 = 60% de recargo). Hay un único registro
// por comercio; los casos de uso lo tratan como entrada de solo lectura.
type MarginConfig struct {
	WholesaleMargin decimal.Decimal
	RetailMargin    decimal.Decimal
	UpdatedAt       time.Time
}

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProduct es una fila del ranking de artículos más vendidos.
type TopProduct struct {
	ProductID string
	Code      string
	Name      string
	Quantity  int64
	Revenue   decimal.Decimal
}

// AnalyticsRepository define consultas read-only para el dashboard.
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve facturación y costo de ventas autorizadas en el rango.
	GetSalesMetrics(ctx context.Context, from, to time.Time) (revenue, cost decimal.Decimal, err error)
	// GetTopProducts devuelve los artículos más vendidos del rango, hasta limit.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesMetrics devuelve facturación y costo de las ventas autorizadas del rango.
// El costo usa el purchase_cost vigente del artículo, no el histórico.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
	SELECT
	    COALESCE(SUM(i.subtotal), 0)                  AS revenue,
	    COALESCE(SUM(i.quantity * p.purchase_cost), 0) AS cost
	FROM sales s
	JOIN sale_items i ON i.sale_id = s.id
	JOIN products   p ON p.id      = i.product_id
	WHERE s.date BETWEEN $1 AND $2
	  AND s.status = $3`

	var revenue, cost decimal.Decimal
	err := r.pool.QueryRow(ctx, query, from, to, entity.SaleStatusAuthorized).Scan(&revenue, &cost)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return revenue, cost, nil
}

// GetTopProducts devuelve los artículos más vendidos del rango, hasta limit.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	const query = `
	SELECT
	    i.product_id,
	    i.code,
	    i.name,
	    SUM(i.quantity)  AS quantity,
	    SUM(i.subtotal)  AS revenue
	FROM sales s
	JOIN sale_items i ON i.sale_id = s.id
	WHERE s.date BETWEEN $1 AND $2
	  AND s.status <> $3
	GROUP BY i.product_id, i.code, i.name
	ORDER BY quantity DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, from, to, entity.SaleStatusCancelled, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProduct
	for rows.Next() {
		var row repository.TopProduct
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Name, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

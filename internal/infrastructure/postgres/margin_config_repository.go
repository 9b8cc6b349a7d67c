package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

var _ repository.MarginConfigRepository = (*MarginConfigRepo)(nil)

// MarginConfigRepo acceso a la fila única de configuración de márgenes.
type MarginConfigRepo struct {
	q Querier
}

// NewMarginConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMarginConfigRepository(q Querier) *MarginConfigRepo {
	return &MarginConfigRepo{q: q}
}

// Get devuelve la configuración vigente. Si la tabla está vacía devuelve
// multiplicadores neutros (1.0) para que el caso de uso no falle.
func (r *MarginConfigRepo) Get(ctx context.Context) (*entity.MarginConfig, error) {
	var cfg entity.MarginConfig
	err := r.q.QueryRow(ctx,
		`SELECT wholesale_margin, retail_margin, updated_at FROM margin_config WHERE id = 1`,
	).Scan(&cfg.WholesaleMargin, &cfg.RetailMargin, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			cfg.WholesaleMargin = decimal.NewFromInt(1)
			cfg.RetailMargin = decimal.NewFromInt(1)
			return &cfg, nil
		}
		return nil, fmt.Errorf("get margin config: %w", err)
	}
	return &cfg, nil
}

// Update reemplaza la configuración (upsert sobre la fila única).
func (r *MarginConfigRepo) Update(ctx context.Context, cfg *entity.MarginConfig) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO margin_config (id, wholesale_margin, retail_margin, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET wholesale_margin = EXCLUDED.wholesale_margin,
		    retail_margin    = EXCLUDED.retail_margin,
		    updated_at       = EXCLUDED.updated_at`,
		cfg.WholesaleMargin, cfg.RetailMargin, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update margin config: %w", err)
	}
	return nil
}

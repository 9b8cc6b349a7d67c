package repository

import (
	"context"

	"github.com/gfarias/comercial-api/internal/domain/entity"
)

// MarginConfigRepository da acceso a la configuración de márgenes del comercio.
// Get se invoca una vez por sesión de importación; el resultado es de solo
// lectura durante la sesión.
type MarginConfigRepository interface {
	Get(ctx context.Context) (*entity.MarginConfig, error)
	Update(ctx context.Context, cfg *entity.MarginConfig) error
}

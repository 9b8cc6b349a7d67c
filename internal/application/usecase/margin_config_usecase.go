package usecase

import (
	"context"
	"time"

	"github.com/gfarias/comercial-api/internal/application/dto"
	"github.com/gfarias/comercial-api/internal/domain"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/pricing"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// MarginConfigUseCase lectura y actualización de los márgenes del comercio.
type MarginConfigUseCase struct {
	repo repository.MarginConfigRepository
}

// NewMarginConfigUseCase construye el caso de uso.
func NewMarginConfigUseCase(repo repository.MarginConfigRepository) *MarginConfigUseCase {
	return &MarginConfigUseCase{repo: repo}
}

// Get devuelve la configuración vigente.
func (uc *MarginConfigUseCase) Get(ctx context.Context) (*dto.MarginConfigResponse, error) {
	cfg, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MarginConfigResponse{
		WholesaleMargin: cfg.WholesaleMargin,
		RetailMargin:    cfg.RetailMargin,
	}, nil
}

// Update reemplaza los multiplicadores. Deben ser ambos positivos.
func (uc *MarginConfigUseCase) Update(ctx context.Context, in dto.UpdateMarginConfigRequest) (*dto.MarginConfigResponse, error) {
	m := pricing.Margins{Wholesale: in.WholesaleMargin, Retail: in.RetailMargin}
	if !m.Valid() {
		return nil, domain.ErrInvalidInput
	}
	cfg := &entity.MarginConfig{
		WholesaleMargin: in.WholesaleMargin,
		RetailMargin:    in.RetailMargin,
		UpdatedAt:       time.Now(),
	}
	if err := uc.repo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return &dto.MarginConfigResponse{
		WholesaleMargin: cfg.WholesaleMargin,
		RetailMargin:    cfg.RetailMargin,
	}, nil
}

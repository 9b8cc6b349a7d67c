package shopify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gfarias/comercial-api/internal/domain"
	"github.com/gfarias/comercial-api/internal/domain/entity"
	"github.com/gfarias/comercial-api/internal/domain/ref"
	"github.com/gfarias/comercial-api/internal/domain/repository"
)

// SyncUseCase publica artículos del catálogo en Shopify y expone las
// colecciones de la tienda. La asociación producto→colección sale de la
// categoría del artículo (Category.ShopifyCollectionID).
type SyncUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	client       Client
}

// NewSyncUseCase construye el caso de uso. client puede ser nil si la
// integración está deshabilitada.
func NewSyncUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, client Client) *SyncUseCase {
	return &SyncUseCase{productRepo: productRepo, categoryRepo: categoryRepo, client: client}
}

// Enabled informa si la integración está configurada.
func (uc *SyncUseCase) Enabled() bool { return uc.client != nil }

// ListCollections devuelve las custom collections de la tienda.
func (uc *SyncUseCase) ListCollections(ctx context.Context) ([]Collection, error) {
	if uc.client == nil {
		return nil, fmt.Errorf("%w: integración Shopify no configurada", domain.ErrConflict)
	}
	return uc.client.ListCustomCollections(ctx)
}

// PushProduct publica (o actualiza) un artículo en Shopify y persiste el ID
// remoto asignado.
func (uc *SyncUseCase) PushProduct(ctx context.Context, productID string) error {
	if uc.client == nil {
		return fmt.Errorf("%w: integración Shopify no configurada", domain.ErrConflict)
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	collectionID, err := uc.collectionFor(product)
	if err != nil {
		return err
	}
	remoteID, err := uc.client.PushProduct(ctx, product, collectionID)
	if err != nil {
		return fmt.Errorf("shopify: publicar %s: %w", product.Code, err)
	}
	if remoteID != product.ShopifyProductID {
		product.ShopifyProductID = remoteID
		if err := uc.productRepo.Update(product); err != nil {
			return fmt.Errorf("shopify: persistir ID remoto: %w", err)
		}
	}
	log.Info().Str("code", product.Code).Str("shopify_id", remoteID).Msg("artículo publicado en Shopify")
	return nil
}

// PushCategory publica todos los artículos de una categoría. Devuelve la
// cantidad publicada; corta en el primer error.
func (uc *SyncUseCase) PushCategory(ctx context.Context, categoryID string) (int, error) {
	if uc.client == nil {
		return 0, fmt.Errorf("%w: integración Shopify no configurada", domain.ErrConflict)
	}
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, domain.ErrNotFound
	}

	all, err := uc.productRepo.ListAll()
	if err != nil {
		return 0, err
	}
	products := ref.FilterByOwner(all, func(p *entity.Product) ref.OwnerRef {
		return ref.FromID(p.CategoryID)
	}, categoryID)

	pushed := 0
	for _, p := range products {
		remoteID, err := uc.client.PushProduct(ctx, p, category.ShopifyCollectionID)
		if err != nil {
			return pushed, fmt.Errorf("shopify: publicar %s: %w", p.Code, err)
		}
		if remoteID != p.ShopifyProductID {
			p.ShopifyProductID = remoteID
			if err := uc.productRepo.Update(p); err != nil {
				return pushed, fmt.Errorf("shopify: persistir ID remoto: %w", err)
			}
		}
		pushed++
	}
	return pushed, nil
}

func (uc *SyncUseCase) collectionFor(product *entity.Product) (string, error) {
	if product.CategoryID == "" {
		return "", nil
	}
	category, err := uc.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return "", err
	}
	if category == nil {
		return "", nil
	}
	return category.ShopifyCollectionID, nil
}

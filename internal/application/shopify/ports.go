package shopify

import (
	"context"

	"github.com/gfarias/comercial-api/internal/domain/entity"
)

// Collection es una custom collection del Admin API de Shopify.
type Collection struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Client define el puerto de salida hacia el Admin API de Shopify.
// La implementación concreta usa REST; para tests se inyecta un mock.
type Client interface {
	// ListCustomCollections devuelve las custom collections de la tienda.
	ListCustomCollections(ctx context.Context) ([]Collection, error)
	// PushProduct crea o actualiza el producto en Shopify y devuelve su ID.
	// Si collectionID no es vacío, el producto se asocia a esa colección.
	PushProduct(ctx context.Context, product *entity.Product, collectionID string) (string, error)
}

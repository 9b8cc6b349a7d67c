package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name                string `json:"name" validate:"required,min=1,max=100"`
	ShopifyCollectionID string `json:"shopify_collection_id"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	ShopifyCollectionID string    `json:"shopify_collection_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

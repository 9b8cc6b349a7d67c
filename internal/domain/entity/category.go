package entity

import "time"

// Category agrupa artículos del catálogo. Se usa también para mapear
// colecciones de Shopify.
type Category struct {
	ID                  string
	Name                string
	ShopifyCollectionID string // vacío si no está ligada a una colección
	CreatedAt           time.Time
}

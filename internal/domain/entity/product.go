package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo.
// Code es la clave natural con la que se concilian las listas de precios de
// proveedores; PurchaseCost es el costo base del que derivan los precios
// mayorista y minorista.
type Product struct {
	ID               string
	Code             string // código único de artículo
	Name             string
	Description      string
	SupplierID       string
	CategoryID       string
	PurchaseCost     decimal.Decimal
	WholesalePrice   decimal.Decimal
	RetailPrice      decimal.Decimal
	CurrentStock     int
	ShopifyProductID string // vacío si el artículo no está publicado en Shopify
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

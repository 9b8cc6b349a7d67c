package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/domain/ref"
)

// CreateProductRequest entrada para crear un artículo.
type CreateProductRequest struct {
	Code           string          `json:"code" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Description    string          `json:"description"`
	SupplierID     string          `json:"supplier_id"`
	CategoryID     string          `json:"category_id"`
	PurchaseCost   decimal.Decimal `json:"purchase_cost"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	CurrentStock   int             `json:"current_stock"`
}

// UpdateProductRequest entrada para actualizar un artículo. El body del
// PUT /products/:id original admite precios y stock parciales.
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string          `json:"description"`
	SupplierID     *string          `json:"supplier_id"`
	CategoryID     *string          `json:"category_id"`
	PurchaseCost   *decimal.Decimal `json:"purchase_cost"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	RetailPrice    *decimal.Decimal `json:"retail_price"`
	CurrentStock   *int             `json:"current_stock"`
}

// ProductResponse salida de un artículo. Supplier viaja como referencia
// polimórfica: id plano u objeto expandido según lo que haya resuelto el
// caso de uso.
type ProductResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Supplier         ref.OwnerRef    `json:"supplier"`
	CategoryID       string          `json:"category_id,omitempty"`
	PurchaseCost     decimal.Decimal `json:"purchase_cost"`
	WholesalePrice   decimal.Decimal `json:"wholesale_price"`
	RetailPrice      decimal.Decimal `json:"retail_price"`
	CurrentStock     int             `json:"current_stock"`
	ShopifyProductID string          `json:"shopify_product_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de artículos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/domain/ref"
)

// CreateSaleItemRequest renglón de la venta a crear.
type CreateSaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	// UnitPrice opcional: si es cero se usa el precio minorista vigente.
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ClientID      string                  `json:"client_id" validate:"required"`
	Items         []CreateSaleItemRequest `json:"items" validate:"required,min=1"`
	PaymentMethod string                  `json:"payment_method"`
	VoucherType   int                     `json:"voucher_type"`
}

// SaleItemResponse renglón de venta en respuestas.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta. Client viaja como referencia polimórfica
// (id plano u objeto expandido), la misma forma que consumía el panel web.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        int64              `json:"number"`
	Client        ref.OwnerRef       `json:"client"`
	Date          time.Time          `json:"date"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	VoucherType   int                `json:"voucher_type"`
	Status        string             `json:"status"`
	CAE           string             `json:"cae,omitempty"`
	CAEDueDate    *time.Time         `json:"cae_due_date,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

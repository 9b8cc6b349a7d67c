package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/domain/ref"
)

// CreateSupplierInvoiceRequest entrada para registrar una factura de compra.
type CreateSupplierInvoiceRequest struct {
	SupplierID string          `json:"supplier_id" validate:"required"`
	Number     string          `json:"number" validate:"required"`
	Date       time.Time       `json:"date"`
	DueDate    time.Time       `json:"due_date"`
	Total      decimal.Decimal `json:"total" validate:"required"`
	Notes      string          `json:"notes"`
}

// SupplierInvoiceResponse salida de una factura de compra. Supplier viaja
// como referencia polimórfica.
type SupplierInvoiceResponse struct {
	ID        string          `json:"id"`
	Supplier  ref.OwnerRef    `json:"supplier"`
	Number    string          `json:"number"`
	Date      time.Time       `json:"date"`
	DueDate   time.Time       `json:"due_date"`
	Total     decimal.Decimal `json:"total"`
	Paid      bool            `json:"paid"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// SupplierInvoiceListResponse lista paginada de facturas de compra.
type SupplierInvoiceListResponse struct {
	Items []SupplierInvoiceResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

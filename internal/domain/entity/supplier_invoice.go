package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierInvoice representa una factura de compra recibida de un proveedor.
type SupplierInvoice struct {
	ID         string
	SupplierID string
	Number     string // numeración del proveedor, ej "0003-00012345"
	Date       time.Time
	DueDate    time.Time
	Total      decimal.Decimal
	Paid       bool
	Notes      string
	CreatedAt  time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una venta frente a AFIP.
const (
	SaleStatusPending    = "pendiente"  // registrada, sin CAE
	SaleStatusAuthorized = "autorizada" // CAE otorgado por AFIP
	SaleStatusCancelled  = "anulada"
)

// Tipos de comprobante soportados (tabla AFIP de tipos de comprobante).
const (
	VoucherTypeFacturaB = 6  // Factura B
	VoucherTypeFacturaC = 11 // Factura C
)

// Sale representa una venta con sus renglones.
// El CAE y su vencimiento se completan cuando AFIP autoriza el comprobante.
type Sale struct {
	ID            string
	PuntoVenta    int
	Number        int64 // número de comprobante, correlativo por punto de venta
	ClientID      string
	Date          time.Time
	Items         []SaleItem
	Total         decimal.Decimal
	PaymentMethod string // "efectivo", "transferencia", "tarjeta", "cuenta_corriente"
	VoucherType   int
	Status        string
	CAE           string
	CAEDueDate    time.Time
	CreatedAt     time.Time
}

// SaleItem es un renglón de la venta. Code y Name se copian del producto al
// momento de vender para que el comprobante no cambie si el catálogo cambia.
type SaleItem struct {
	ProductID string
	Code      string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

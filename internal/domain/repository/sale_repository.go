package repository

import (
	"time"

	"github.com/gfarias/comercial-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus renglones.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// ListAll devuelve todas las ventas con renglones; lo usa el resolutor
	// de asociaciones para derivar ventas-por-cliente en memoria.
	ListAll() ([]*entity.Sale, error)
	// NextNumber devuelve el próximo número de comprobante para el punto de venta.
	NextNumber(puntoVenta int) (int64, error)
	// UpdateCAE guarda el CAE otorgado por AFIP y marca la venta autorizada.
	UpdateCAE(saleID, cae string, dueDate time.Time) error
	UpdateStatus(saleID, status string) error
}

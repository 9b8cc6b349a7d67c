package repository

import "github.com/gfarias/comercial-api/internal/domain/entity"

// SupplierInvoiceRepository define el puerto de persistencia para facturas de compra.
type SupplierInvoiceRepository interface {
	Create(invoice *entity.SupplierInvoice) error
	GetByID(id string) (*entity.SupplierInvoice, error)
	List(limit, offset int) ([]*entity.SupplierInvoice, error)
	ListAll() ([]*entity.SupplierInvoice, error)
	MarkPaid(id string) error
	Delete(id string) error
}

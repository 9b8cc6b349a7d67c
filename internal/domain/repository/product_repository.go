package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gfarias/comercial-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdatePrices actualiza solo costo y precios derivados (motor de importación).
	UpdatePrices(productID string, purchaseCost, wholesalePrice, retailPrice decimal.Decimal) error
	// AdjustStock suma delta (puede ser negativo) al stock actual.
	AdjustStock(productID string, delta int) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListAll devuelve el catálogo completo; es el snapshot que usa la conciliación CSV.
	ListAll() ([]*entity.Product, error)
	Delete(id string) error
}

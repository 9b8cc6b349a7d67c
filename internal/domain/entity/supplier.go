package entity

import "time"

// Supplier representa un proveedor de mercadería.
type Supplier struct {
	ID        string
	Name      string
	CUIT      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

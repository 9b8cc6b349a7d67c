package entity

import "time"

// Client representa un cliente del comercio.
type Client struct {
	ID        string
	Name      string
	CUIT      string // puede estar vacío para consumidor final
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

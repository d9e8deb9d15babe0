package products

import "time"

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  string // opcional, referencia blanda

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryRef es la categoría embebida en la respuesta.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Detail es el producto con su categoría resuelta (nil si no tiene o ya no existe).
type Detail struct {
	Product
	Category *CategoryRef
}

package images

import "context"

// Species es la especie tal como la guarda el dominio de mascotas.
type Species string

const (
	SpeciesDog Species = "Perro"
	SpeciesCat Species = "Gato"
)

// BreedImageResolver devuelve una URL de imagen para especie+raza.
// Nunca falla: si no hay imagen real devuelve un placeholder.
type BreedImageResolver interface {
	Resolve(ctx context.Context, species Species, breed string) string
}

package pets

import "time"

// Species define las especies soportadas.
// @Enum Perro, Gato, Conejo, Pajaro, Reptil, Otro
type Species string

const (
	SpeciesDog     Species = "Perro"
	SpeciesCat     Species = "Gato"
	SpeciesRabbit  Species = "Conejo"
	SpeciesBird    Species = "Pajaro"
	SpeciesReptile Species = "Reptil"
	SpeciesOther   Species = "Otro"
)

// Pet representa una mascota registrada en la clínica.
// OwnerID es una referencia blanda: no se valida que el propietario exista.
type Pet struct {
	ID      string
	OwnerID string

	Nombre          string
	Especie         Species
	Raza            string
	Peso            float64
	FechaNacimiento time.Time
	ImagenURL       string
	Microchip       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

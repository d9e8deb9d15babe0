package medicalrecords

import "time"

const (
	DefaultVeterinario = "Dr. Sistema"
)

// MedicalRecord es una entrada de la historia clínica de una mascota.
// PetID es referencia blanda: no se valida ni se borra en cascada.
type MedicalRecord struct {
	ID    string
	PetID string

	Fecha time.Time
	Hora  string // HH:MM

	Diagnostico string
	Tratamiento string
	Veterinario string
	Notas       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

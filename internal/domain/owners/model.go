package owners

import "time"

// Owner es el cliente de la clínica, dueño de una o más mascotas.
type Owner struct {
	ID        string
	Nombre    string
	Telefono  string
	Email     string // siempre en minúsculas
	Direccion string

	CreatedAt time.Time
	UpdatedAt time.Time
}

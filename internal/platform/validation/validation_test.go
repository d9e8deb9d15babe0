package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/apperror"
)

type sample struct {
	Nombre string   `json:"nombre" validate:"required,min=3"`
	Email  string   `json:"email" validate:"required,email"`
	Peso   float64  `json:"peso" validate:"gte=0.1"`
	Hora   string   `json:"hora" validate:"hhmm"`
	Fecha  string   `json:"fecha" validate:"isodate"`
	Alias  *string  `json:"alias" validate:"omitempty,min=2"`
	Rol    string   `json:"role" validate:"omitempty,oneof=admin veterinario recepcionista"`
	Extra  *float64 `json:"extra" validate:"omitempty,gt=0"`
}

func valid() sample {
	return sample{
		Nombre: "Juan",
		Email:  "juan@example.com",
		Peso:   3.2,
		Hora:   "09:30",
		Fecha:  "2024-05-01",
	}
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(valid()))
}

func TestStruct_CollectsMessages(t *testing.T) {
	s := valid()
	s.Nombre = "Ju"
	s.Hora = "9:30"
	s.Rol = "jefe"

	err := Struct(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Contains(t, err.Error(), "nombre debe tener al menos 3 caracteres")
	assert.Contains(t, err.Error(), "hora debe ser en formato HH:MM")
	assert.Contains(t, err.Error(), "role no válido")
}

func TestStruct_NilPointerIsSkipped(t *testing.T) {
	s := valid()
	s.Alias = nil
	require.NoError(t, Struct(s))

	short := "x"
	s.Alias = &short
	err := Struct(s)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "alias", appErr.Field)
}

func TestStruct_NumericBounds(t *testing.T) {
	s := valid()
	s.Peso = 0
	err := Struct(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "peso debe ser mayor o igual a 0.1")
}

func TestStruct_MaxBytesCountsBytes(t *testing.T) {
	type pw struct {
		Password string `json:"password" validate:"maxbytes=72"`
	}

	require.NoError(t, Struct(pw{Password: strings.Repeat("ñ", 36)}))

	err := Struct(pw{Password: strings.Repeat("ñ", 40)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Contains(t, err.Error(), "password no puede exceder los 72 bytes")
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2022-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2022, d.Year())

	_, err = ParseISODate("2022-01-15T10:00:00Z")
	require.NoError(t, err)

	_, err = ParseISODate("15/01/2022")
	assert.Error(t, err)
}

// Package validation centraliza las reglas de campo (longitudes, enums,
// formatos de fecha/hora) sobre go-playground/validator y las traduce a un
// único error de validación con mensajes en castellano.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"vet-clinic-api/internal/apperror"
)

var hhmmRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Instancia compartida: validator cachea la metadata de cada struct.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Los mensajes usan el nombre JSON del campo, que es el que conoce el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmRe.MatchString(fl.Field().String())
	})
	// maxbytes cuenta bytes, no runas (bcrypt corta en 72 bytes).
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseISODate(fl.Field().String())
		return err == nil
	})

	return v
}

// Struct valida v y devuelve nil o un *apperror.AppError (ErrValidation) con
// todos los mensajes separados por coma.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation(err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}

	appErr := apperror.Validation(strings.Join(msgs, ", "))
	if len(verrs) == 1 {
		appErr.Field = verrs[0].Field()
	}
	return appErr
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es requerido", field)
	case "min":
		if isText {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s no puede exceder los %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser menor o igual a %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor a %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("El %s es inválido", field)
	case "oneof":
		return fmt.Sprintf("%s no válido (valores: %s)", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "maxbytes":
		return fmt.Sprintf("%s no puede exceder los %s bytes", field, fe.Param())
	case "hhmm":
		return fmt.Sprintf("%s debe ser en formato HH:MM", field)
	case "isodate":
		return fmt.Sprintf("%s debe ser una fecha ISO-8601 válida", field)
	default:
		return fmt.Sprintf("%s es inválido", field)
	}
}

var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseISODate acepta fecha sola (YYYY-MM-DD) o fecha-hora RFC3339.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 date %q", s)
}

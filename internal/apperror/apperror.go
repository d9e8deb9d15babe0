package apperror

import (
	"errors"
	"net/http"
)

// Sentinels por tipo de error. Los adapters de storage devuelven ErrNotFound y
// ErrDuplicate "pelados"; los servicios los envuelven en un *AppError con el
// mensaje que ve el cliente.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate key")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AppError struct {
	Err     error  // sentinel (para errors.Is)
	Message string // mensaje para el cliente
	Field   string // opcional
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

func ValidationField(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Field: field}
}

func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

func Duplicate(message string) *AppError {
	return &AppError{Err: ErrDuplicate, Message: message}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Err: ErrUnauthenticated, Message: message}
}

func InvalidToken(message string) *AppError {
	return &AppError{Err: ErrInvalidToken, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

func InvalidCredentials(message string) *AppError {
	return &AppError{Err: ErrInvalidCredentials, Message: message}
}

// FromStore traduce los sentinels que devuelve storage a errores con mensaje.
// Cualquier otro error pasa tal cual (termina en 500).
func FromStore(err error, notFoundMsg, duplicateMsg string) error {
	var appErr *AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, ErrNotFound):
		return &AppError{Err: ErrNotFound, Message: notFoundMsg}
	case errors.Is(err, ErrDuplicate):
		return &AppError{Err: ErrDuplicate, Message: duplicateMsg}
	default:
		return err
	}
}

// Status traduce un error a código HTTP. Lo que no se reconoce es 500.
//
// Ojo con la asimetría: token ausente => 401, token inválido o vencido => 403.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message devuelve el mensaje apto para el cliente. Errores no tipados nunca
// exponen su texto interno.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Algo salió mal en el servidor"
}

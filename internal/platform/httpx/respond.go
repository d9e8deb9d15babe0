// Package httpx: helpers de respuesta JSON compartidos por todos los handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/platform/logger"
)

// ErrorResponse es la única forma de error que devuelve el API.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MessageResponse para endpoints que solo confirman (logout, password, etc).
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError mapea el error a status y escribe {status:"error", message}.
// Los 500 se loguean con el error real; al cliente va un mensaje genérico.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.Status(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("unhandled error", map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err,
		})
	}

	WriteJSON(w, status, ErrorResponse{
		Status:  "error",
		Message: apperror.Message(err),
	})
}

// DecodeJSON decodifica el body. Body vacío o JSON inválido => ErrValidation.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apperror.Validation("Body JSON requerido")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("Body JSON requerido")
		}
		return apperror.Validation("JSON inválido")
	}
	return nil
}

package owners

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard) {
	r.Route("/api/owner", func(or chi.Router) {
		or.Get("/", listOwnersHandler(svc))
		or.Get("/{id}", getOwnerHandler(svc))

		// Alta/baja/modificación: recepción y admin
		or.Group(func(wr chi.Router) {
			wr.Use(guard.Roles(auth.RoleRecepcionista, auth.RoleAdmin))
			wr.Post("/", createOwnerHandler(svc))
			wr.Put("/{id}", updateOwnerHandler(svc))
			wr.Delete("/{id}", deleteOwnerHandler(svc))
		})
	})
}

// ownerResponse representa un propietario devuelto por la API.
type ownerResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Direccion string    `json:"direccion,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type deleteOwnerResponse struct {
	Message string        `json:"message"`
	Owner   ownerResponse `json:"owner"`
}

// listOwnersHandler godoc
// @Summary Listar propietarios
// @Tags owners
// @Produce json
// @Success 200 {array} ownerResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/owner [get]
func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOwnerResponse(o))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getOwnerHandler godoc
// @Summary Obtener propietario
// @Tags owners
// @Produce json
// @Param id path string true "ID del propietario"
// @Success 200 {object} ownerResponse
// @Failure 404 {object} httpx.ErrorResponse "Propietario no encontrado"
// @Router /api/owner/{id} [get]
func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

// createOwnerHandler godoc
// @Summary Crear propietario
// @Description Requiere rol recepcionista o admin. El email se guarda en minúsculas y debe ser único.
// @Tags owners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body CreateInput true "Datos del propietario"
// @Success 201 {object} ownerResponse
// @Failure 400 {object} httpx.ErrorResponse "validación"
// @Failure 401 {object} httpx.ErrorResponse "sin token"
// @Failure 403 {object} httpx.ErrorResponse "token inválido o rol no permitido"
// @Failure 409 {object} httpx.ErrorResponse "email duplicado"
// @Router /api/owner [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		o, err := svc.Create(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

// updateOwnerHandler godoc
// @Summary Actualizar propietario
// @Description Los campos omitidos conservan su valor.
// @Tags owners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del propietario"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} ownerResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /api/owner/{id} [put]
func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		o, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

// deleteOwnerHandler godoc
// @Summary Eliminar propietario
// @Description No borra en cascada: sus mascotas siguen apuntando al id eliminado.
// @Tags owners
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del propietario"
// @Success 200 {object} deleteOwnerResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/owner/{id} [delete]
func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, deleteOwnerResponse{
			Message: "Propietario eliminado exitosamente",
			Owner:   toOwnerResponse(o),
		})
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:        o.ID,
		Nombre:    o.Nombre,
		Telefono:  o.Telefono,
		Email:     o.Email,
		Direccion: o.Direccion,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

package categories

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard) {
	r.Route("/api/categoria", func(cr chi.Router) {
		// Lectura pública
		cr.Get("/", listCategoriesHandler(svc))
		cr.Get("/{id}", getCategoryHandler(svc))

		cr.Group(func(wr chi.Router) {
			wr.Use(guard.Roles(auth.RoleAdmin))
			wr.Post("/", createCategoryHandler(svc))
			wr.Put("/{id}", updateCategoryHandler(svc))
			wr.Delete("/{id}", deleteCategoryHandler(svc))
		})
	})
}

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type deleteCategoryResponse struct {
	Message  string           `json:"message"`
	Category categoryResponse `json:"category"`
}

// @Summary Listar categorías
// @Tags categories
// @Produce json
// @Success 200 {array} categoryResponse
// @Router /api/categoria [get]
func listCategoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		out := make([]categoryResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCategoryResponse(c))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// @Summary Obtener categoría
// @Tags categories
// @Produce json
// @Param id path string true "ID de la categoría"
// @Success 200 {object} categoryResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/categoria/{id} [get]
func getCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
	}
}

// @Summary Crear categoría
// @Description Solo admin. name único.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body CreateInput true "Categoría"
// @Success 201 {object} categoryResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /api/categoria [post]
func createCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		c, err := svc.Create(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(c))
	}
}

// @Summary Actualizar categoría
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la categoría"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} categoryResponse
// @Router /api/categoria/{id} [put]
func updateCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		c, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
	}
}

// @Summary Eliminar categoría
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la categoría"
// @Success 200 {object} deleteCategoryResponse
// @Router /api/categoria/{id} [delete]
func deleteCategoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, deleteCategoryResponse{
			Message:  "Categoría eliminada exitosamente",
			Category: toCategoryResponse(c),
		})
	}
}

func toCategoryResponse(c Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

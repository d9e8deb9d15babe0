package products

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard) {
	r.Route("/api/producto", func(pr chi.Router) {
		pr.Get("/", listProductsHandler(svc))
		pr.Get("/{id}", getProductHandler(svc))

		pr.Group(func(wr chi.Router) {
			wr.Use(guard.Roles(auth.RoleAdmin))
			wr.Post("/", createProductHandler(svc))
			wr.Put("/{id}", updateProductHandler(svc))
			wr.Delete("/{id}", deleteProductHandler(svc))
		})
	})
}

// productResponse: category es null si el producto no tiene categoría o si fue borrada.
type productResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Stock       int          `json:"stock"`
	CategoryID  string       `json:"categoryId,omitempty"`
	Category    *CategoryRef `json:"category"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type deleteProductResponse struct {
	Message string          `json:"message"`
	Product productResponse `json:"product"`
}

// @Summary Listar productos
// @Tags products
// @Produce json
// @Success 200 {array} productResponse
// @Router /api/producto [get]
func listProductsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		out := make([]productResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toProductResponse(d))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// @Summary Obtener producto
// @Tags products
// @Produce json
// @Param id path string true "ID del producto"
// @Success 200 {object} productResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/producto/{id} [get]
func getProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProductResponse(d))
	}
}

// @Summary Crear producto
// @Description Solo admin.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body CreateInput true "Producto"
// @Success 201 {object} productResponse
// @Router /api/producto [post]
func createProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		d, err := svc.Create(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toProductResponse(d))
	}
}

// @Summary Actualizar producto
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} productResponse
// @Router /api/producto/{id} [put]
func updateProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		d, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProductResponse(d))
	}
}

// @Summary Eliminar producto
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 200 {object} deleteProductResponse
// @Router /api/producto/{id} [delete]
func deleteProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, deleteProductResponse{
			Message: "Producto eliminado exitosamente",
			Product: toProductResponse(Detail{Product: p}),
		})
	}
}

func toProductResponse(d Detail) productResponse {
	return productResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		CategoryID:  d.CategoryID,
		Category:    d.Category,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

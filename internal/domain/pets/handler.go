package pets

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard) {
	r.Route("/api/pet", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/owner/{ownerId}", listPetsByOwnerHandler(svc))
		pr.Get("/{id}", getPetHandler(svc))

		pr.Group(func(wr chi.Router) {
			wr.Use(guard.Roles(auth.RoleRecepcionista, auth.RoleAdmin))
			wr.Post("/", createPetHandler(svc))
			wr.Put("/{id}", updatePetHandler(svc))
			wr.Delete("/{id}", deletePetHandler(svc))
		})
	})
}

// petResponse representa una mascota devuelta por la API.
type petResponse struct {
	ID              string    `json:"id"`
	Nombre          string    `json:"nombre"`
	Especie         Species   `json:"especie" enums:"Perro,Gato,Conejo,Pajaro,Reptil,Otro"`
	Raza            string    `json:"raza"`
	Peso            float64   `json:"peso"`
	FechaNacimiento time.Time `json:"fecha_nacimiento"`
	OwnerID         string    `json:"ownerId"`
	ImagenURL       string    `json:"imagen_url"`
	Microchip       string    `json:"microchip,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type deletePetResponse struct {
	Message string      `json:"message"`
	Pet     petResponse `json:"pet"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Router /api/pet [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponses(items))
	}
}

// listPetsByOwnerHandler godoc
// @Summary Listar mascotas de un propietario
// @Description No valida que el propietario exista; un id desconocido devuelve [].
// @Tags pets
// @Produce json
// @Param ownerId path string true "ID del propietario"
// @Success 200 {array} petResponse
// @Router /api/pet/owner/{ownerId} [get]
func listPetsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "ownerId"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponses(items))
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param id path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} httpx.ErrorResponse "Mascota no encontrada"
// @Router /api/pet/{id} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Requiere rol recepcionista o admin. Si no se envía imagen_url se busca una foto por especie/raza (Perro, Gato) o se usa un placeholder.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body CreateInput true "Datos de la mascota; fecha_nacimiento ISO-8601"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /api/pet [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Los campos omitidos conservan su valor. Si cambia especie o raza y no se envía imagen_url, se vuelve a buscar la foto.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la mascota"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/pet/{id} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Description Las historias clínicas de la mascota no se borran.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la mascota"
// @Success 200 {object} deletePetResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/pet/{id} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, deletePetResponse{
			Message: "Mascota eliminada exitosamente",
			Pet:     toPetResponse(p),
		})
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:              p.ID,
		Nombre:          p.Nombre,
		Especie:         p.Especie,
		Raza:            p.Raza,
		Peso:            p.Peso,
		FechaNacimiento: p.FechaNacimiento,
		OwnerID:         p.OwnerID,
		ImagenURL:       p.ImagenURL,
		Microchip:       p.Microchip,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

package medicalrecords

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/platform/validation"
	"vet-clinic-api/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard) {
	r.Route("/api/medical-record", func(mr chi.Router) {
		mr.Group(func(rr chi.Router) {
			rr.Use(guard.Roles(auth.RoleVeterinario, auth.RoleAdmin, auth.RoleRecepcionista))
			rr.Get("/", listRecordsHandler(svc))
			rr.Get("/pet/{petId}", listRecordsByPetHandler(svc))
			rr.Get("/{id}", getRecordHandler(svc))
		})

		mr.Group(func(wr chi.Router) {
			wr.Use(guard.Roles(auth.RoleRecepcionista, auth.RoleAdmin))
			wr.Post("/", createRecordHandler(svc))
			wr.Put("/{id}", updateRecordHandler(svc))
			wr.Delete("/{id}", deleteRecordHandler(svc))
		})
	})
}

// recordResponse representa una entrada de historia clínica devuelta por la API.
type recordResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"petId"`
	Fecha       time.Time `json:"fecha"`
	Hora        string    `json:"hora"`
	Diagnostico string    `json:"diagnostico"`
	Tratamiento string    `json:"tratamiento"`
	Veterinario string    `json:"veterinario"`
	Notas       string    `json:"notas"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type deleteRecordResponse struct {
	Message string         `json:"message"`
	Record  recordResponse `json:"record"`
}

// listRecordsHandler godoc
// @Summary Listar historias clínicas
// @Tags medical-records
// @Produce json
// @Security BearerAuth
// @Success 200 {array} recordResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /api/medical-record [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponses(items))
	}
}

// listRecordsByPetHandler godoc
// @Summary Historia clínica de una mascota
// @Description Ordenada de la más reciente a la más antigua. Permite filtrar por rango de fechas y texto.
// @Tags medical-records
// @Produce json
// @Security BearerAuth
// @Param petId path string true "ID de la mascota"
// @Param from query string false "Fecha mínima (ISO-8601)"
// @Param to query string false "Fecha máxima (ISO-8601)"
// @Param q query string false "Texto en diagnóstico/tratamiento/notas"
// @Param limit query int false "Máximo de resultados (1-200)"
// @Success 200 {array} recordResponse
// @Failure 400 {object} httpx.ErrorResponse "Parámetros de filtro inválidos"
// @Router /api/medical-record/pet/{petId} [get]
func listRecordsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petId"), filter)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponses(items))
	}
}

// getRecordHandler godoc
// @Summary Obtener historia clínica
// @Tags medical-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/medical-record/{id} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(m))
	}
}

// createRecordHandler godoc
// @Summary Crear historia clínica
// @Description veterinario por defecto "Dr. Sistema"; hora en formato HH:MM.
// @Tags medical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body CreateInput true "Registro clínico"
// @Success 201 {object} recordResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/medical-record [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		m, err := svc.Create(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toRecordResponse(m))
	}
}

// @Summary Actualizar historia clínica
// @Tags medical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del registro"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} recordResponse
// @Router /api/medical-record/{id} [put]
func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		m, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(m))
	}
}

// @Summary Eliminar historia clínica
// @Tags medical-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del registro"
// @Success 200 {object} deleteRecordResponse
// @Router /api/medical-record/{id} [delete]
func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, deleteRecordResponse{
			Message: "Historial clínico eliminado exitosamente",
			Record:  toRecordResponse(m),
		})
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{}

	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := validation.ParseISODate(v)
		if err != nil {
			return ListFilter{}, apperror.ValidationField("from", "from debe ser una fecha ISO-8601 válida")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := validation.ParseISODate(v)
		if err != nil {
			return ListFilter{}, apperror.ValidationField("to", "to debe ser una fecha ISO-8601 válida")
		}
		filter.To = &t
	}

	filter.Query = strings.TrimSpace(q.Get("q"))
	return filter, nil
}

func toRecordResponses(items []MedicalRecord) []recordResponse {
	out := make([]recordResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toRecordResponse(m))
	}
	return out
}

func toRecordResponse(m MedicalRecord) recordResponse {
	return recordResponse{
		ID:          m.ID,
		PetID:       m.PetID,
		Fecha:       m.Fecha,
		Hora:        m.Hora,
		Diagnostico: m.Diagnostico,
		Tratamiento: m.Tratamiento,
		Veterinario: m.Veterinario,
		Notas:       m.Notas,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

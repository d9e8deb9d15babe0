package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "vet-clinic-api/docs"
	mem "vet-clinic-api/internal/adapters/storage/memory"
	pg "vet-clinic-api/internal/adapters/storage/postgres"
	"vet-clinic-api/internal/domain/categories"
	"vet-clinic-api/internal/domain/medicalrecords"
	"vet-clinic-api/internal/domain/owners"
	"vet-clinic-api/internal/domain/pets"
	"vet-clinic-api/internal/domain/products"
	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/ports/auth"
	"vet-clinic-api/internal/ports/images"
)

type Options struct {
	Verifier auth.AuthVerifier
	Issuer   auth.Issuer
	Hasher   auth.PasswordHasher
	Images   images.BreedImageResolver

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger         logger.Logger
	AllowedOrigins []string // vacío => "*"
}

// Services agrupa los servicios de dominio ya cableados a su storage.
type Services struct {
	Owners         *owners.Service
	Pets           *pets.Service
	MedicalRecords *medicalrecords.Service
	Categories     *categories.Service
	Products       *products.Service
	Users          *users.Service
	Credentials    *users.Credentials
}

// BuildServices elige storage (Postgres si hay DB, memoria si no) y arma los servicios.
// Lo usa también el CLI (create-admin, seed).
func BuildServices(opts Options) Services {
	var (
		ownerRepo    owners.Repository
		petRepo      pets.Repository
		recordRepo   medicalrecords.Repository
		categoryRepo categories.Repository
		productRepo  products.Repository
		userRepo     users.Repository
	)

	if opts.DB != nil {
		ownerRepo = pg.NewOwnersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		recordRepo = pg.NewMedicalRecordsRepo(opts.DB)
		categoryRepo = pg.NewCategoriesRepo(opts.DB)
		productRepo = pg.NewProductsRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
	} else {
		ownerRepo = mem.NewOwnerRepo()
		petRepo = mem.NewPetRepo()
		recordRepo = mem.NewMedicalRecordRepo()
		categoryRepo = mem.NewCategoryRepo()
		productRepo = mem.NewProductRepo()
		userRepo = mem.NewUserRepo()
	}

	categoriesSvc := categories.NewService(categoryRepo)

	return Services{
		Owners:         owners.NewService(ownerRepo),
		Pets:           pets.NewService(petRepo, opts.Images),
		MedicalRecords: medicalrecords.NewService(recordRepo),
		Categories:     categoriesSvc,
		Products:       products.NewService(productRepo, categoriesSvc),
		Users:          users.NewService(userRepo, opts.Hasher),
		Credentials:    users.NewCredentials(userRepo, opts.Hasher, opts.Issuer),
	}
}

func NewRouter(opts Options) http.Handler {
	return NewRouterWithServices(opts, BuildServices(opts))
}

// NewRouterWithServices monta las rutas sobre servicios ya construidos.
func NewRouterWithServices(opts Options, svc Services) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	guard := middleware.NewGuard(opts.Verifier)
	r.Use(guard.Optional())

	r.Get("/health", health(opts.DB))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Endpoints de prueba del esquema de auth
	r.Get("/public", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Endpoint público"})
	})
	r.With(guard.Authenticated()).Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Endpoint protegido",
			"user":    claims,
		})
	})
	r.With(guard.Roles(auth.RoleAdmin)).Get("/admin", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Endpoint de administrador"})
	})

	// Rutas por módulo
	users.RegisterAuthRoutes(r, svc.Credentials, guard)
	users.RegisterRoutes(r, svc.Users, guard)
	owners.RegisterRoutes(r, svc.Owners, guard)
	pets.RegisterRoutes(r, svc.Pets, guard)
	medicalrecords.RegisterRoutes(r, svc.MedicalRecords, guard)
	categories.RegisterRoutes(r, svc.Categories, guard)
	products.RegisterRoutes(r, svc.Products, guard)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ErrorResponse{Status: "error", Message: "Ruta no encontrada"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusMethodNotAllowed, httpx.ErrorResponse{Status: "error", Message: "Método no permitido"})
	})

	return cors(opts.AllowedOrigins)(r)
}

func cors(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
}

type healthResponse struct {
	Status   string          `json:"status"`
	Storage  string          `json:"storage"`
	Database pg.HealthStatus `json:"database"`
}

// health
// @Summary Estado del servicio
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Success 503 {object} healthResponse
// @Router /health [get]
func health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			httpx.WriteJSON(w, http.StatusOK, healthResponse{
				Status:   "ok",
				Storage:  "memory",
				Database: pg.HealthStatus{Connected: false},
			})
			return
		}

		st := pg.Health(r.Context(), db)
		resp := healthResponse{Status: "ok", Storage: "postgres", Database: st}
		code := http.StatusOK
		if !st.Connected {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, code, resp)
	}
}

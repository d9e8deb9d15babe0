package users

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/ports/auth"
)

// RegisterAuthRoutes monta /auth (registro, login, sesión, contraseña).
func RegisterAuthRoutes(r chi.Router, creds *Credentials, guard middleware.Guard) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(creds))
		ar.Post("/login", loginHandler(creds))

		ar.Group(func(pr chi.Router) {
			pr.Use(guard.Authenticated())
			pr.Post("/logout", logoutHandler())
			pr.Get("/me", meHandler())
			pr.Patch("/password", changePasswordHandler(creds))
		})
	})
}

// RegisterRoutes monta el CRUD de usuarios, solo admin.
func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard) {
	r.Route("/api/user", func(ur chi.Router) {
		ur.Use(guard.Roles(auth.RoleAdmin))
		ur.Get("/", listUsersHandler(svc))
		ur.Get("/{id}", getUserHandler(svc))
		ur.Post("/", createUserHandler(svc))
		ur.Put("/{id}", updateUserHandler(svc))
		ur.Delete("/{id}", deleteUserHandler(svc))
	})
}

// userResponse nunca incluye el hash.
type userResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      auth.Role  `json:"role" enums:"admin,veterinario,recepcionista"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type deleteUserResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Registro público. El rol siempre es recepcionista.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RegisterInput true "username (>=3), email, password (>=8)"
// @Success 201 {object} registerResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse "El usuario o email ya existe"
// @Router /auth/register [post]
func registerHandler(creds *Credentials) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		u, err := creds.Register(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, registerResponse{
			Message: "Usuario creado exitosamente",
			User:    toUserResponse(u),
		})
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Email desconocido y contraseña incorrecta devuelven el mismo 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body LoginInput true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse "Credenciales inválidas"
// @Router /auth/login [post]
func loginHandler(creds *Credentials) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		sess, err := creds.Login(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		u := sess.User
		httpx.WriteJSON(w, http.StatusOK, loginResponse{
			Token:     sess.Token.Value,
			ExpiresAt: sess.Token.ExpiresAt,
			User: userResponse{
				ID:       u.ID,
				Username: u.Username,
				Email:    u.Email,
				Role:     u.Role,
			},
		})
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Description Los tokens no se revocan; el cliente debe descartarlo.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.MessageResponse
// @Router /auth/logout [post]
func logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Sesión cerrada exitosamente"})
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Description Devuelve las claims del token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/me [get]
func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperror.Unauthenticated("Usuario no autenticado"))
			return
		}
		httpx.WriteJSON(w, http.StatusOK, userResponse{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		})
	}
}

// changePasswordHandler godoc
// @Summary Cambiar contraseña
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body ChangePasswordInput true "currentPassword y newPassword (>=8)"
// @Success 200 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.ErrorResponse "Contraseña actual incorrecta"
// @Failure 404 {object} httpx.ErrorResponse "Usuario no encontrado"
// @Router /auth/password [patch]
func changePasswordHandler(creds *Credentials) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperror.Unauthenticated("Usuario no autenticado"))
			return
		}

		var req ChangePasswordInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		if err := creds.ChangePassword(r.Context(), claims.UserID, req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Contraseña actualizada exitosamente"})
	}
}

// @Summary Listar usuarios
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} userResponse
// @Router /api/user [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// @Summary Obtener usuario
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del usuario"
// @Success 200 {object} userResponse
// @Router /api/user/{id} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// @Summary Crear usuario
// @Description Solo admin; puede asignar cualquier rol (por defecto recepcionista).
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body CreateInput true "Usuario"
// @Success 201 {object} userResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /api/user [post]
func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		u, err := svc.Create(r.Context(), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// @Summary Actualizar usuario
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del usuario"
// @Param payload body UpdateInput true "username, email, role"
// @Success 200 {object} userResponse
// @Router /api/user/{id} [put]
func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateInput
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		u, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// @Summary Eliminar usuario
// @Description Un admin no puede eliminar su propia cuenta.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del usuario"
// @Success 200 {object} deleteUserResponse
// @Failure 400 {object} httpx.ErrorResponse "No puedes eliminar tu propia cuenta"
// @Router /api/user/{id} [delete]
func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, deleteUserResponse{
			Message: "Usuario eliminado exitosamente",
			User:    toUserResponse(u),
		})
	}
}

func toUserResponse(u User) userResponse {
	created, updated := u.CreatedAt, u.UpdatedAt
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}

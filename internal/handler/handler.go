package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"redsocial/internal/config"
	"redsocial/internal/database"
	"redsocial/internal/service"
)

// ContextKey is the type for values the auth middleware stores on the
// request context.
type ContextKey string

const ContextUsername ContextKey = "username"

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	ProfileService service.ProfileService
	DB             *database.DB
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, db *database.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		PostService:    services.Post,
		ProfileService: services.Profile,
		DB:             db,
		Cfg:            cfg,
		Validate:       validator.New(),
	}
}

// requestUsername prefers the identity established by the auth
// middleware over whatever the client put in the request body. Clients
// that never send a token keep working on the body field alone.
func requestUsername(r *http.Request, fallback string) string {
	if username, ok := r.Context().Value(ContextUsername).(string); ok && username != "" {
		return username
	}
	return fallback
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "database unavailable", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

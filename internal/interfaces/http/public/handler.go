// Package public serves the read-only directory endpoints consumed by the
// mobile and web clients.
package public

import (
	"log"

	"github.com/go-chi/chi/v5"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
)

// Handler wires public HTTP endpoints to the query service.
type Handler struct {
	logger  *log.Logger
	queries application.QueryService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger  *log.Logger
	Queries application.QueryService
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:  cfg.Logger,
		queries: cfg.Queries,
	}
}

// Register mounts the public routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/posts", h.postListHandler())
	r.Get("/api/posts/{id}", h.postDetailHandler())
}

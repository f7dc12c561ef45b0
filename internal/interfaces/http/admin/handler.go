// Package admin serves the authenticated write endpoints: record CRUD plus
// triggering bulk imports.
package admin

import (
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
)

// requestValidator checks request DTO shape before the typed field
// validators run; built once, safe for concurrent use.
var requestValidator = validator.New()

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger   *log.Logger
	commands application.CommandService
	importer application.ImportService
	source   application.Source
}

// Config provides dependencies for Handler.
type Config struct {
	Logger   *log.Logger
	Commands application.CommandService
	Importer application.ImportService
	// Source is the configured upstream feed used by POST /imports.
	Source application.Source
}

// NewHandler constructs the admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		commands: cfg.Commands,
		importer: cfg.Importer,
		source:   cfg.Source,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/posts", h.postCreateHandler())
	r.Patch("/posts/{id}", h.postUpdateHandler())
	r.Delete("/posts/{id}", h.postDeleteHandler())
	r.Post("/imports", h.importHandler())
}

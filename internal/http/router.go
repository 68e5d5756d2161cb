package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skypad/internal/handlers"
	"skypad/internal/notes"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Controller *notes.Controller
	Store      handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)

	notesHandler := handlers.NewNotesHandler(deps.Controller)
	pageHandler := handlers.NewPageHandler(deps.Controller)
	healthHandler := handlers.NewHealthHandler(deps.Store)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", notesHandler.List)
			r.Post("/", notesHandler.Create)
			r.Get("/{id}", notesHandler.Get)
			r.Put("/{id}", notesHandler.Update)
			r.Delete("/{id}", notesHandler.Delete)
		})
	})

	// Widget page
	r.Get("/", pageHandler.Show)
	r.Post("/notes", pageHandler.Save)
	r.Post("/notes/{id}/delete", pageHandler.Delete)

	return r
}

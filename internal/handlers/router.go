package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"reportTracker/internal/middleware"
)

// NewRouter builds the full route tree. Login, the roster and the
// health probe are open; everything else needs a resolved X-User-ID,
// and the admin block additionally needs the admin role.
func NewRouter(h *ReportHandler, rpm int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	if rpm > 0 {
		r.Use(middleware.RateLimit(rpm))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID", "X-Request-ID"},
	}))

	r.Post("/login", h.Login)
	r.Get("/users", h.ListUsers)
	r.Get("/health", h.HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.PostTask)
			r.Get("/export", h.ExportCSV)
			r.Post("/import", h.ImportCSV)
			r.Get("/{id}", h.GetTask)
			r.Put("/{id}", h.PutTask)
			r.Delete("/{id}", h.DeleteTask)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/overview", h.Overview)
			r.Get("/monthly", h.MonthlySeries)
		})
		r.Get("/calendar/{year}/{month}/{day}", h.CalendarDay)

		r.Post("/insight", h.Insight)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/backup", h.Backup)
			r.Post("/restore", h.Restore)
			r.Post("/reset", h.Reset)
		})
	})

	return r
}

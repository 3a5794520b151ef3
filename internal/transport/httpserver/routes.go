package httpserver

import (
	"net/http"
	"time"

	"orbit-expenses/internal/config"
	"orbit-expenses/internal/transport/httpserver/handler"
	authmw "orbit-expenses/internal/transport/httpserver/middleware"
	"orbit-expenses/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		auth := authmw.NewAuth(cfg.Supabase, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)
			r.Post("/reset", handlers.Common.Reset)

			r.Get("/dashboard", handlers.Dashboard.Overview)
			r.Post("/dashboard/toggle", handlers.Dashboard.Toggle)

			r.Get("/expenses", handlers.Expenses.ListExpenses)
			r.Post("/expenses", handlers.Expenses.CreateExpense)
			r.Get("/expenses/export", handlers.Expenses.ExportExpenses)
			r.Get("/expenses/template", handlers.Expenses.ImportTemplate)
			r.Post("/expenses/import", handlers.Expenses.ImportExpenses)
			r.Put("/expenses/{id}", handlers.Expenses.UpdateExpense)
			r.Delete("/expenses/{id}", handlers.Expenses.DeleteExpense)

			r.Get("/categories", handlers.Expenses.ListCategories)
			r.Post("/categories", handlers.Expenses.CreateCategory)
			r.Patch("/categories/{id}", handlers.Expenses.UpdateCategory)
			r.Delete("/categories/{id}", handlers.Expenses.DeleteCategory)

			r.Get("/icons", handlers.Expenses.ListIcons)
			r.Post("/icons", handlers.Expenses.CreateIcon)
			r.Delete("/icons/{name}", handlers.Expenses.DeleteIcon)
		})
	})

	return r
}

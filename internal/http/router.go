package http

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/asset-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/asset-dashboard/internal/http/rate_limiter"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Get("/aggregates", handlers.GetAggregatesHandler)
		r.Get("/items", handlers.GetFilteredItemsHandler)
		r.Get("/evolution", handlers.GetEvolutionHandler)
		r.Get("/filters", handlers.GetFilterOptionsHandler)
		r.Get("/drilldown/{dimension}/{key}", handlers.ResolveDrillDownHandler)
		r.Get("/macro/{dimension}/{key}", handlers.GetMacroViewHandler)
		r.Get("/detail", handlers.GetDetailHandler)
		r.With(RateLimitMiddleware).Post("/refresh", handlers.RefreshHandler)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Get("/", handlers.GetPreferencesHandler)
		r.Get("/export", handlers.ExportPreferencesHandler)
		r.With(RateLimitMiddleware).Post("/import", handlers.ImportPreferencesHandler)
		r.With(RateLimitMiddleware).Put("/layout", handlers.PutLayoutHandler)
		r.With(RateLimitMiddleware).Put("/theme", handlers.PutThemeHandler)
		r.With(RateLimitMiddleware).Post("/presets/{name}", handlers.SavePresetHandler)
		r.With(RateLimitMiddleware).Post("/presets/{name}/apply", handlers.ApplyPresetHandler)
		r.With(RateLimitMiddleware).Delete("/presets/{name}", handlers.DeletePresetHandler)
		r.With(RateLimitMiddleware).Post("/reset", handlers.ResetPreferencesHandler)
	})

	r.Route("/alerts", func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Get("/stream", handlers.StreamAlertsHandler)
		r.With(RateLimitMiddleware).Post("/", handlers.PublishAlertHandler)
	})

	return r
}

// RateLimitMiddleware throttles mutating endpoints per client IP.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

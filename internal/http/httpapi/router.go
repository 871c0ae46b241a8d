package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter assembles the HTTP API: middleware chain first, then the
// streamer and donation routes.
func NewRouter(app *handlers.App, cfg *infra.Config, log zerolog.Logger, country middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(log),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.I18N("en", country),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/streamer", app.StreamerCreate)
		r.Get("/streamer/{id}", app.StreamerGet)
		r.Get("/streamer/by-wallet/{address}", app.StreamerByWallet)
		r.Get("/streamers", app.StreamersList)

		r.Post("/donate/{streamerId}/message", app.DonationCreate)

		r.Get("/donations/{id}", app.DonationGet)
		r.Get("/donations/streamer/{id}", app.DonationsByStreamer)
		r.Get("/donations/streamer/{id}/stats", app.DonationStats)
	})

	return r
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/service"
)

// App bundles the services the HTTP handlers depend on.
type App struct {
	Streamers *service.StreamerService
	Donations *service.DonationService
	Log       zerolog.Logger
}

// NewApp creates the handler container.
func NewApp(streamers *service.StreamerService, donations *service.DonationService, log zerolog.Logger) *App {
	return &App{Streamers: streamers, Donations: donations, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// serviceError maps domain errors to HTTP responses. Unexpected errors are
// logged and answered with a locale-appropriate generic message.
func (a *App) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domain.ErrDuplicateWallet):
		a.error(w, http.StatusConflict, "duplicate_wallet", err.Error())
	default:
		a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", internalMessage(middleware.LocaleFromContext(r.Context())))
	}
}

func internalMessage(locale string) string {
	if locale == "ko" {
		return "요청을 처리하지 못했습니다"
	}
	return "internal server error"
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/service"
)

type tierPayload struct {
	AmountUSD    float64 `json:"amount_usd"`
	PopupMessage string  `json:"popup_message"`
	DurationMS   int     `json:"duration_ms"`
}

type createStreamerRequest struct {
	Name            string        `json:"name"`
	WalletAddress   string        `json:"wallet_address"`
	Platforms       []string      `json:"platforms"`
	AvatarURL       string        `json:"avatar_url"`
	DonationTiers   []tierPayload `json:"donation_tiers"`
	ThankYouMessage string        `json:"thank_you_message"`
}

type streamerResponse struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	WalletAddress   string        `json:"wallet_address"`
	Platforms       []string      `json:"platforms"`
	AvatarURL       string        `json:"avatar_url,omitempty"`
	DonationTiers   []tierPayload `json:"donation_tiers"`
	ThankYouMessage string        `json:"thank_you_message"`
}

func (a *App) StreamerCreate(w http.ResponseWriter, r *http.Request) {
	var req createStreamerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	in := service.CreateStreamerInput{
		Name:            req.Name,
		WalletAddress:   req.WalletAddress,
		AvatarURL:       req.AvatarURL,
		ThankYouMessage: req.ThankYouMessage,
	}
	for _, p := range req.Platforms {
		in.Platforms = append(in.Platforms, domain.Platform(p))
	}
	for _, t := range req.DonationTiers {
		in.DonationTiers = append(in.DonationTiers, domain.DonationTier(t))
	}

	streamer, err := a.Streamers.Create(r.Context(), in)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toStreamerResponse(streamer))
}

func (a *App) StreamerGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	streamer, err := a.Streamers.GetByID(r.Context(), id)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toStreamerResponse(streamer))
}

func (a *App) StreamerByWallet(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	streamer, err := a.Streamers.GetByWallet(r.Context(), address)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toStreamerResponse(streamer))
}

func (a *App) StreamersList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	streamers, err := a.Streamers.List(r.Context(), limit)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	items := make([]streamerResponse, 0, len(streamers))
	for i := range streamers {
		items = append(items, toStreamerResponse(&streamers[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func toStreamerResponse(streamer *domain.Streamer) streamerResponse {
	resp := streamerResponse{
		ID:              streamer.ID,
		Name:            streamer.Name,
		WalletAddress:   streamer.WalletAddress,
		AvatarURL:       streamer.AvatarURL,
		ThankYouMessage: streamer.ThankYouMessage,
		Platforms:       make([]string, 0, len(streamer.Platforms)),
		DonationTiers:   make([]tierPayload, 0, len(streamer.DonationTiers)),
	}
	for _, p := range streamer.Platforms {
		resp.Platforms = append(resp.Platforms, string(p))
	}
	for _, t := range streamer.DonationTiers {
		resp.DonationTiers = append(resp.DonationTiers, tierPayload(t))
	}
	return resp
}

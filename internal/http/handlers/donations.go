package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/service"
)

type donationRequest struct {
	AmountUSD    float64 `json:"amount_usd"`
	DonorAddress string  `json:"donor_address"`
	Message      string  `json:"message"`
	ClipURL      string  `json:"clip_url"`
	TxHash       string  `json:"tx_hash"`
}

type donationReceiptResponse struct {
	DonationID   string `json:"donation_id"`
	PopupMessage string `json:"popup_message"`
	DurationMS   int    `json:"duration_ms"`
}

type donationResponse struct {
	DonationID   string  `json:"donation_id"`
	StreamerID   string  `json:"streamer_id"`
	AmountUSD    float64 `json:"amount_usd"`
	DonorAddress string  `json:"donor_address"`
	Message      string  `json:"message,omitempty"`
	ClipURL      string  `json:"clip_url,omitempty"`
	TxHash       string  `json:"tx_hash"`
	Timestamp    int64   `json:"timestamp"`
}

func (a *App) DonationCreate(w http.ResponseWriter, r *http.Request) {
	streamerID := chi.URLParam(r, "streamerId")

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	receipt, err := a.Donations.ProcessDonation(r.Context(), streamerID, service.DonationInput{
		AmountUSD:    req.AmountUSD,
		DonorAddress: req.DonorAddress,
		Message:      req.Message,
		ClipURL:      req.ClipURL,
		TxHash:       req.TxHash,
	})
	if err != nil {
		a.serviceError(w, r, err)
		return
	}

	a.json(w, http.StatusCreated, donationReceiptResponse{
		DonationID:   receipt.DonationID,
		PopupMessage: receipt.PopupMessage,
		DurationMS:   receipt.DurationMS,
	})
}

func (a *App) DonationGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	donation, err := a.Donations.GetByID(r.Context(), id)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDonationResponse(donation))
}

func (a *App) DonationsByStreamer(w http.ResponseWriter, r *http.Request) {
	streamerID := chi.URLParam(r, "id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	donations, err := a.Donations.ListForStreamer(r.Context(), streamerID, limit)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	items := make([]donationResponse, 0, len(donations))
	for i := range donations {
		items = append(items, toDonationResponse(&donations[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) DonationStats(w http.ResponseWriter, r *http.Request) {
	streamerID := chi.URLParam(r, "id")
	stats, err := a.Donations.Stats(r.Context(), streamerID)
	if err != nil {
		a.serviceError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_amount_usd": stats.TotalAmountUSD,
		"donation_count":   stats.DonationCount,
		"unique_donors":    stats.UniqueDonors,
	})
}

func toDonationResponse(donation *domain.Donation) donationResponse {
	return donationResponse{
		DonationID:   donation.ID,
		StreamerID:   donation.StreamerID,
		AmountUSD:    donation.AmountUSD,
		DonorAddress: donation.DonorAddress,
		Message:      donation.Message,
		ClipURL:      donation.ClipURL,
		TxHash:       donation.TxHash,
		Timestamp:    donation.Timestamp,
	}
}

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "cicorent/internal/errors"
	"cicorent/internal/pricing"
	"cicorent/internal/repository"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.ErrBadRequest("invalid request body")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps service and repository errors onto HTTP statuses.
// Validation problems are the caller's fault; broken tariff tables are ours
// and get logged without leaking internals.
func respondError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		respondJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
		return
	}

	var validationErr *pricing.ValidationError
	var rangeErr *pricing.InvalidRangeError
	if errors.As(err, &validationErr) || errors.As(err, &rangeErr) {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var blackoutErr *repository.BlackoutConflictError
	if errors.As(err, &blackoutErr) {
		dates := make([]string, 0, len(blackoutErr.Dates))
		for _, d := range blackoutErr.Dates {
			dates = append(dates, d.Format("2006-01-02"))
		}
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":          "requested dates include blackout days",
			"blackout_dates": dates,
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrNoAvailability):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "no units available for the requested dates"})
	case errors.Is(err, repository.ErrVehicleNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "booking not found"})
	case errors.Is(err, repository.ErrBlackoutNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "blackout date not found"})
	default:
		var tariffErr *pricing.TariffNotFoundError
		var rateErr *pricing.RateNotDefinedError
		if errors.As(err, &tariffErr) || errors.As(err, &rateErr) {
			log.Printf("pricing configuration error: %v", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "pricing unavailable for this vehicle"})
			return
		}
		log.Printf("internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

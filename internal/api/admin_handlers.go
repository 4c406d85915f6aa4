package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"cicorent/internal/entities"
	"cicorent/internal/service"
)

type AdminBookingHandler struct {
	Service *service.BookingService
	Auth    service.AuthService
}

func NewAdminBookingHandler(svc *service.BookingService, auth service.AuthService) *AdminBookingHandler {
	return &AdminBookingHandler{Service: svc, Auth: auth}
}

func (h *AdminBookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListBookings()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *AdminBookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var patch entities.BookingUpdate
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.Service.UpdateBooking(id, &patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *AdminBookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.DeleteBooking(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})
}

func (h *AdminBookingHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	employee, err := h.Auth.CreateEmployee(req.Username, req.Password, req.Role)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":       employee.ID,
		"username": employee.Username,
		"role":     employee.Role,
	})
}

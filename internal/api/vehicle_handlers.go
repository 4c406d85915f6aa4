package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"cicorent/internal/db"
	"cicorent/internal/entities"
	"cicorent/internal/service"
)

type VehicleHandler struct {
	Service *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

// vehicleView is the public vehicle shape. Counts stay internal; clients only
// need the catalog fields.
type vehicleView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Type         string   `json:"type"`
	BasePriceDay float64  `json:"base_price_day"`
	ColorOptions []string `json:"color_options"`
	Seats        int      `json:"seats"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuel_type"`
	ImageURL     string   `json:"image_url,omitempty"`
}

func toVehicleView(v *db.Vehicle) vehicleView {
	return vehicleView{
		ID:           v.ID,
		Name:         v.Name,
		Slug:         v.Slug,
		Type:         v.Type,
		BasePriceDay: v.BasePriceDay,
		ColorOptions: v.ColorOptions,
		Seats:        v.Seats,
		Transmission: v.Transmission,
		FuelType:     v.FuelType,
		ImageURL:     v.ImageURL.String,
	}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.ListVehicles()
	if err != nil {
		respondError(w, err)
		return
	}
	views := make([]vehicleView, 0, len(vehicles))
	for i := range vehicles {
		views = append(views, toVehicleView(&vehicles[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *VehicleHandler) GetVehicleBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	vehicle, err := h.Service.GetVehicleBySlug(slug)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toVehicleView(vehicle))
}

func (h *VehicleHandler) GetFullyBookedDates(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	dates, err := h.Service.FullyBookedDates(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"vehicle_id":         id,
		"fully_booked_dates": dates,
	})
}

// adminVehicleView includes the stock counts hidden from the public catalog.
type adminVehicleView struct {
	vehicleView
	Quantity          int `json:"quantity"`
	AvailableQuantity int `json:"available_quantity"`
}

func toAdminVehicleView(v *db.Vehicle) adminVehicleView {
	return adminVehicleView{
		vehicleView:       toVehicleView(v),
		Quantity:          v.Quantity,
		AvailableQuantity: v.AvailableQuantity,
	}
}

func (h *VehicleHandler) AdminListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.ListVehicles()
	if err != nil {
		respondError(w, err)
		return
	}
	views := make([]adminVehicleView, 0, len(vehicles))
	for i := range vehicles {
		views = append(views, toAdminVehicleView(&vehicles[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *VehicleHandler) AdminCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req entities.VehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	vehicle, err := h.Service.CreateVehicle(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAdminVehicleView(vehicle))
}

func (h *VehicleHandler) AdminUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req entities.VehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	vehicle, err := h.Service.UpdateVehicle(id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAdminVehicleView(vehicle))
}

// ListBlackoutDates serves both the public calendar and the admin console.
func (h *VehicleHandler) ListBlackoutDates(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	blackouts, err := h.Service.ListBlackoutDates(id)
	if err != nil {
		respondError(w, err)
		return
	}
	type blackoutView struct {
		ID        string `json:"id"`
		VehicleID string `json:"vehicle_id"`
		Date      string `json:"date"`
	}
	views := make([]blackoutView, 0, len(blackouts))
	for _, b := range blackouts {
		views = append(views, blackoutView{ID: b.ID, VehicleID: b.VehicleID, Date: b.Date.Format("2006-01-02")})
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *VehicleHandler) AdminCreateBlackoutDate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Date string `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	blackout, err := h.Service.CreateBlackoutDate(id, req.Date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":         blackout.ID,
		"vehicle_id": blackout.VehicleID,
		"date":       blackout.Date.Format("2006-01-02"),
	})
}

func (h *VehicleHandler) AdminDeleteBlackoutDate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["blackoutID"]
	if err := h.Service.DeleteBlackoutDate(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Blackout date removed"})
}

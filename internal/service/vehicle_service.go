package service

import (
	"fmt"
	"time"

	"cicorent/internal/db"
	"cicorent/internal/entities"
	"cicorent/internal/pricing"
)

// fullyBookedWindowDays bounds the calendar lookahead for the public
// fully-booked endpoint.
const fullyBookedWindowDays = 90

type VehicleBookings interface {
	ListActiveBookingsInRange(vehicleID string, start, end time.Time) ([]db.Booking, error)
}

type BlackoutRepo interface {
	ListBlackoutDates(vehicleID string) ([]db.BlackoutDate, error)
	ListBlackoutDatesInRange(vehicleID string, start, end time.Time) ([]db.BlackoutDate, error)
	CreateBlackoutDate(b *db.BlackoutDate) error
	DeleteBlackoutDate(id string) error
}

type VehicleRepo interface {
	ListVehicles() ([]db.Vehicle, error)
	GetVehicle(id string) (*db.Vehicle, error)
	GetVehicleBySlug(slug string) (*db.Vehicle, error)
	CreateVehicle(v *db.Vehicle) error
	UpdateVehicle(v *db.Vehicle) error
}

type VehicleService struct {
	Repo      VehicleRepo
	Bookings  VehicleBookings
	Blackouts BlackoutRepo
}

func NewVehicleService(repo VehicleRepo, bookings VehicleBookings, blackouts BlackoutRepo) *VehicleService {
	return &VehicleService{Repo: repo, Bookings: bookings, Blackouts: blackouts}
}

func (s *VehicleService) ListVehicles() ([]db.Vehicle, error) {
	return s.Repo.ListVehicles()
}

func (s *VehicleService) GetVehicle(id string) (*db.Vehicle, error) {
	return s.Repo.GetVehicle(id)
}

func (s *VehicleService) GetVehicleBySlug(slug string) (*db.Vehicle, error) {
	return s.Repo.GetVehicleBySlug(slug)
}

func validateVehicle(req *entities.VehicleRequest) error {
	if req.Name == "" || req.Slug == "" {
		return &pricing.ValidationError{Msg: "name and slug are required"}
	}
	if req.Type != "CAR" && req.Type != "VAN" {
		return &pricing.ValidationError{Msg: fmt.Sprintf("unknown vehicle type %q", req.Type)}
	}
	if req.BasePriceDay <= 0 {
		return &pricing.ValidationError{Msg: "base_price_day must be positive"}
	}
	if req.Quantity < 0 {
		return &pricing.ValidationError{Msg: "quantity cannot be negative"}
	}
	return nil
}

func vehicleFromRequest(req *entities.VehicleRequest, v *db.Vehicle) {
	v.Name = req.Name
	v.Slug = req.Slug
	v.Type = req.Type
	v.BasePriceDay = req.BasePriceDay
	v.Quantity = req.Quantity
	v.AvailableQuantity = req.AvailableQuantity
	if v.AvailableQuantity > v.Quantity {
		v.AvailableQuantity = v.Quantity
	}
	if v.AvailableQuantity < 0 {
		v.AvailableQuantity = 0
	}
	v.ColorOptions = req.ColorOptions
	v.Seats = req.Seats
	v.Transmission = req.Transmission
	v.FuelType = req.FuelType
	v.ImageURL = nullString(req.ImageURL)
}

func (s *VehicleService) CreateVehicle(req *entities.VehicleRequest) (*db.Vehicle, error) {
	if err := validateVehicle(req); err != nil {
		return nil, err
	}
	var v db.Vehicle
	vehicleFromRequest(req, &v)
	if err := s.Repo.CreateVehicle(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *VehicleService) UpdateVehicle(id string, req *entities.VehicleRequest) (*db.Vehicle, error) {
	if err := validateVehicle(req); err != nil {
		return nil, err
	}
	v, err := s.Repo.GetVehicle(id)
	if err != nil {
		return nil, err
	}
	vehicleFromRequest(req, v)
	if err := s.Repo.UpdateVehicle(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) ListBlackoutDates(vehicleID string) ([]db.BlackoutDate, error) {
	return s.Blackouts.ListBlackoutDates(vehicleID)
}

func (s *VehicleService) CreateBlackoutDate(vehicleID, date string) (*db.BlackoutDate, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, &pricing.ValidationError{Msg: fmt.Sprintf("invalid date %q, expected yyyy-mm-dd", date)}
	}
	if _, err := s.Repo.GetVehicle(vehicleID); err != nil {
		return nil, err
	}
	b := &db.BlackoutDate{VehicleID: vehicleID, Date: day}
	if err := s.Blackouts.CreateBlackoutDate(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *VehicleService) DeleteBlackoutDate(id string) error {
	return s.Blackouts.DeleteBlackoutDate(id)
}

// FullyBookedDates returns the days in the next lookahead window where the
// vehicle has no remaining units, blackout days included. The calendar widget
// disables exactly these days.
func (s *VehicleService) FullyBookedDates(vehicleID string) ([]string, error) {
	vehicle, err := s.Repo.GetVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, fullyBookedWindowDays)

	bookings, err := s.Bookings.ListActiveBookingsInRange(vehicleID, start, end)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, b := range bookings {
		for d := b.StartDate; !d.After(b.EndDate); d = d.AddDate(0, 0, 1) {
			counts[d.Format(dateLayout)]++
		}
	}

	full := make(map[string]bool)
	for day, n := range counts {
		if n >= vehicle.Quantity {
			full[day] = true
		}
	}

	blackouts, err := s.Blackouts.ListBlackoutDatesInRange(vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	for _, b := range blackouts {
		full[b.Date.Format(dateLayout)] = true
	}

	dates := make([]string, 0, len(full))
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		if full[key] {
			dates = append(dates, key)
		}
	}
	return dates, nil
}

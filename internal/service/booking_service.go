package service

import (
	"database/sql"
	"fmt"
	"time"

	"cicorent/internal/db"
	"cicorent/internal/entities"
	"cicorent/internal/pricing"
	"cicorent/internal/repository"
)

const dateLayout = "2006-01-02"

// BookingStore is the persistence surface the booking workflow needs.
type BookingStore interface {
	ListBookings() ([]db.Booking, error)
	GetBooking(id string) (*db.Booking, error)
	GetBookingByCode(code, email string) (*db.Booking, error)
	CountOverlapping(vehicleID string, start, end time.Time) (int, error)
	CreateWithAvailability(b *db.Booking) error
	UpdateBooking(b *db.Booking) error
	DeleteBooking(id string) error
}

type VehicleStore interface {
	ListVehicles() ([]db.Vehicle, error)
	GetVehicle(id string) (*db.Vehicle, error)
}

type BlackoutStore interface {
	ListBlackoutDatesInRange(vehicleID string, start, end time.Time) ([]db.BlackoutDate, error)
}

// Notifier is fire-and-forget: implementations log failures and never block
// or fail the booking flow.
type Notifier interface {
	SendBookingCreated(b *entities.BookingResponse)
}

type BookingService struct {
	Repo      BookingStore
	Vehicles  VehicleStore
	Blackouts BlackoutStore
	Catalog   *pricing.Catalog
	Sender    Notifier
}

func NewBookingService(repo BookingStore, vehicles VehicleStore, blackouts BlackoutStore, catalog *pricing.Catalog, sender Notifier) *BookingService {
	return &BookingService{
		Repo:      repo,
		Vehicles:  vehicles,
		Blackouts: blackouts,
		Catalog:   catalog,
		Sender:    sender,
	}
}

// buildConfig validates the wire configuration and turns it into a pricing
// config. Date-range and enum problems are validation errors, raised before
// any tariff lookup.
func buildConfig(req entities.QuoteRequest) (pricing.Config, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return pricing.Config{}, &pricing.ValidationError{Msg: fmt.Sprintf("invalid start_date %q, expected yyyy-mm-dd", req.StartDate)}
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return pricing.Config{}, &pricing.ValidationError{Msg: fmt.Sprintf("invalid end_date %q, expected yyyy-mm-dd", req.EndDate)}
	}
	if end.Before(start) {
		return pricing.Config{}, &pricing.InvalidRangeError{Start: start, End: end}
	}

	pkg := pricing.PackageType(req.PackageType)
	if req.PackageType == "" {
		pkg = pricing.PackageStandard24H
	}
	switch pkg {
	case pricing.PackageStandard24H, pricing.PackageVan4H, pricing.PackageVan10H:
	default:
		return pricing.Config{}, &pricing.ValidationError{Msg: fmt.Sprintf("unknown package_type %q", req.PackageType)}
	}

	km := pricing.KmPlan(req.KmPlan)
	if req.KmPlan == "" {
		km = pricing.Km100
	}
	switch km {
	case pricing.Km100, pricing.Km200, pricing.KmUnlimited:
	default:
		return pricing.Config{}, &pricing.ValidationError{Msg: fmt.Sprintf("unknown km_plan %q", req.KmPlan)}
	}

	coverage := pricing.Coverage(req.Coverage)
	if req.Coverage == "" {
		coverage = pricing.CoverageBase
	}
	switch coverage {
	case pricing.CoverageBase, pricing.CoveragePartial:
	default:
		return pricing.Config{}, &pricing.ValidationError{Msg: fmt.Sprintf("unknown coverage %q", req.Coverage)}
	}

	return pricing.Config{
		StartDate:    start,
		EndDate:      end,
		Package:      pkg,
		KmPlan:       km,
		Coverage:     coverage,
		ExtraDriver:  pricing.ExtraDriverFromFlags(req.ExtraDriver, req.ExtraDriverUnder25),
		HomeDelivery: req.HomeDelivery,
		HomePickup:   req.HomePickup,
	}, nil
}

// Quote computes a price for a rental configuration. Every pricing call site
// in the system goes through here so the numbers are always consistent.
func (s *BookingService) Quote(req entities.QuoteRequest) (*entities.QuoteResponse, error) {
	cfg, err := buildConfig(req)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.Vehicles.GetVehicle(req.VehicleID)
	if err != nil {
		return nil, err
	}

	quote, err := s.Catalog.Compute(vehicle.Slug, pricing.VehicleType(vehicle.Type), cfg)
	if err != nil {
		return nil, err
	}

	return &entities.QuoteResponse{
		Total:     quote.Total,
		DaysCount: quote.DaysCount,
		Breakdown: entities.QuoteBreakdown{
			BaseWithDiscount: quote.Breakdown.BaseWithDiscount,
			Insurance:        quote.Breakdown.Insurance,
			ExtraDriver:      quote.Breakdown.ExtraDriver,
			Delivery:         quote.Breakdown.Delivery,
		},
		DiscountAmount: quote.DiscountAmount,
		DiscountPct:    quote.DiscountPct,
	}, nil
}

// CheckAvailability reports remaining units and blackout conflicts for a
// vehicle over a date range. This is a read-only derivation; nothing is
// reserved by calling it.
func (s *BookingService) CheckAvailability(vehicleID, from, to string) (*entities.AvailabilityResponse, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, &pricing.ValidationError{Msg: fmt.Sprintf("invalid from date %q, expected yyyy-mm-dd", from)}
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, &pricing.ValidationError{Msg: fmt.Sprintf("invalid to date %q, expected yyyy-mm-dd", to)}
	}
	if end.Before(start) {
		return nil, &pricing.InvalidRangeError{Start: start, End: end}
	}

	vehicle, err := s.Vehicles.GetVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.Repo.CountOverlapping(vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	available := vehicle.Quantity - overlapping
	if available < 0 {
		available = 0
	}

	blackouts, err := s.Blackouts.ListBlackoutDatesInRange(vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(blackouts))
	for _, b := range blackouts {
		dates = append(dates, b.Date.Format(dateLayout))
	}

	return &entities.AvailabilityResponse{
		VehicleID:         vehicleID,
		StartDate:         from,
		EndDate:           to,
		AvailableQuantity: available,
		BlackoutDates:     dates,
	}, nil
}

// CreateBooking validates the request, recomputes the price server-side and
// creates the booking in one transaction; the client-supplied total (if any)
// is never trusted. Notifications are fired after commit and cannot fail the
// booking.
func (s *BookingService) CreateBooking(req *entities.BookingRequest) (*entities.BookingResponse, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	cfg, err := buildConfig(req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.Vehicles.GetVehicle(req.VehicleID)
	if err != nil {
		return nil, err
	}

	quote, err := s.Catalog.Compute(vehicle.Slug, pricing.VehicleType(vehicle.Type), cfg)
	if err != nil {
		return nil, err
	}

	birthDate, err := time.Parse(dateLayout, req.CustomerBirthDate)
	if err != nil {
		return nil, &pricing.ValidationError{Msg: fmt.Sprintf("invalid customer_birth_date %q, expected yyyy-mm-dd", req.CustomerBirthDate)}
	}

	booking := &db.Booking{
		VehicleID:          req.VehicleID,
		StartDate:          cfg.StartDate,
		EndDate:            cfg.EndDate,
		DaysCount:          quote.DaysCount,
		PackageType:        string(cfg.Package),
		KmPlan:             string(cfg.KmPlan),
		Coverage:           string(cfg.Coverage),
		ExtraDriver:        cfg.ExtraDriver == pricing.ExtraDriverStandard,
		ExtraDriverUnder25: cfg.ExtraDriver == pricing.ExtraDriverUnder25,
		HomeDelivery:       cfg.HomeDelivery,
		HomePickup:         cfg.HomePickup,
		TotalPrice:         formatAmount(quote.Total),
		DiscountAmount:     formatAmount(quote.DiscountAmount),
		DiscountPct:        formatAmount(quote.DiscountPct),
		CustomerFirstName:  req.CustomerFirstName,
		CustomerLastName:   req.CustomerLastName,
		CustomerBirthDate:  birthDate,
		CustomerPhone:      req.CustomerPhone,
		CustomerEmail:      req.CustomerEmail,
		DriverLicenseNo:    req.DriverLicenseNo,
		AddFirstName:       nullString(req.AddFirstName),
		AddLastName:        nullString(req.AddLastName),
		AddDriverLicenseNo: nullString(req.AddDriverLicenseNo),
		Notes:              nullString(req.Notes),
		Status:             db.StatusPending,
	}
	if req.AddBirthDate != "" {
		addBirth, err := time.Parse(dateLayout, req.AddBirthDate)
		if err != nil {
			return nil, &pricing.ValidationError{Msg: fmt.Sprintf("invalid add_birth_date %q, expected yyyy-mm-dd", req.AddBirthDate)}
		}
		booking.AddBirthDate.Time = addBirth
		booking.AddBirthDate.Valid = true
	}

	if err := s.Repo.CreateWithAvailability(booking); err != nil {
		return nil, err
	}

	resp := toBookingResponse(booking, vehicle.Name)
	s.Sender.SendBookingCreated(resp)
	return resp, nil
}

func (s *BookingService) GetBookingByCode(code, email string) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetBookingByCode(code, email)
	if err != nil {
		return nil, err
	}
	return s.withVehicleName(booking)
}

func (s *BookingService) ListBookings() ([]entities.BookingResponse, error) {
	bookings, err := s.Repo.ListBookings()
	if err != nil {
		return nil, err
	}

	vehicles, err := s.Vehicles.ListVehicles()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		names[v.ID] = v.Name
	}

	responses := make([]entities.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *toBookingResponse(&bookings[i], names[bookings[i].VehicleID]))
	}
	return responses, nil
}

// UpdateBooking applies an admin patch. Status may only leave PENDING, and a
// change to any pricing-relevant field triggers a full server-side
// recomputation of the price snapshot.
func (s *BookingService) UpdateBooking(id string, patch *entities.BookingUpdate) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetBooking(id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status != booking.Status {
		if booking.Status != db.StatusPending {
			return nil, &pricing.ValidationError{Msg: fmt.Sprintf("booking in status %s cannot change status", booking.Status)}
		}
		if *patch.Status != db.StatusConfirmed && *patch.Status != db.StatusCancelled {
			return nil, &pricing.ValidationError{Msg: fmt.Sprintf("invalid status %q", *patch.Status)}
		}
		booking.Status = *patch.Status
	}

	repricing := false
	setString := func(dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			repricing = true
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil && *src != *dst {
			*dst = *src
			repricing = true
		}
	}

	startStr := booking.StartDate.Format(dateLayout)
	endStr := booking.EndDate.Format(dateLayout)
	setString(&startStr, patch.StartDate)
	setString(&endStr, patch.EndDate)
	setString(&booking.PackageType, patch.PackageType)
	setString(&booking.KmPlan, patch.KmPlan)
	setString(&booking.Coverage, patch.Coverage)
	setBool(&booking.ExtraDriver, patch.ExtraDriver)
	setBool(&booking.ExtraDriverUnder25, patch.ExtraDriverUnder25)
	setBool(&booking.HomeDelivery, patch.HomeDelivery)
	setBool(&booking.HomePickup, patch.HomePickup)
	if patch.Notes != nil {
		booking.Notes = nullString(*patch.Notes)
	}

	vehicle, err := s.Vehicles.GetVehicle(booking.VehicleID)
	if err != nil {
		return nil, err
	}

	if repricing {
		cfg, err := buildConfig(entities.QuoteRequest{
			VehicleID:          booking.VehicleID,
			StartDate:          startStr,
			EndDate:            endStr,
			PackageType:        booking.PackageType,
			KmPlan:             booking.KmPlan,
			Coverage:           booking.Coverage,
			ExtraDriver:        booking.ExtraDriver,
			ExtraDriverUnder25: booking.ExtraDriverUnder25,
			HomeDelivery:       booking.HomeDelivery,
			HomePickup:         booking.HomePickup,
		})
		if err != nil {
			return nil, err
		}

		quote, err := s.Catalog.Compute(vehicle.Slug, pricing.VehicleType(vehicle.Type), cfg)
		if err != nil {
			return nil, err
		}

		booking.StartDate = cfg.StartDate
		booking.EndDate = cfg.EndDate
		booking.DaysCount = quote.DaysCount
		booking.TotalPrice = formatAmount(quote.Total)
		booking.DiscountAmount = formatAmount(quote.DiscountAmount)
		booking.DiscountPct = formatAmount(quote.DiscountPct)
	}

	if err := s.Repo.UpdateBooking(booking); err != nil {
		return nil, err
	}
	return toBookingResponse(booking, vehicle.Name), nil
}

func (s *BookingService) DeleteBooking(id string) error {
	return s.Repo.DeleteBooking(id)
}

func (s *BookingService) withVehicleName(booking *db.Booking) (*entities.BookingResponse, error) {
	vehicle, err := s.Vehicles.GetVehicle(booking.VehicleID)
	if err != nil {
		if err == repository.ErrVehicleNotFound {
			return toBookingResponse(booking, ""), nil
		}
		return nil, err
	}
	return toBookingResponse(booking, vehicle.Name), nil
}

func validateCustomer(req *entities.BookingRequest) error {
	missing := func(field, value string) error {
		if value == "" {
			return &pricing.ValidationError{Msg: fmt.Sprintf("%s is required", field)}
		}
		return nil
	}
	for _, check := range []struct{ field, value string }{
		{"customer_first_name", req.CustomerFirstName},
		{"customer_last_name", req.CustomerLastName},
		{"customer_birth_date", req.CustomerBirthDate},
		{"customer_phone", req.CustomerPhone},
		{"customer_email", req.CustomerEmail},
		{"driver_license_no", req.DriverLicenseNo},
	} {
		if err := missing(check.field, check.value); err != nil {
			return err
		}
	}
	return nil
}

func formatAmount(n float64) string {
	return fmt.Sprintf("%.2f", n)
}

func nullString(s string) (ns sql.NullString) {
	if s != "" {
		ns.String = s
		ns.Valid = true
	}
	return ns
}

func toBookingResponse(b *db.Booking, vehicleName string) *entities.BookingResponse {
	return &entities.BookingResponse{
		ID:                 b.ID,
		BookingCode:        b.BookingCode,
		VehicleID:          b.VehicleID,
		VehicleName:        vehicleName,
		StartDate:          b.StartDate.Format(dateLayout),
		EndDate:            b.EndDate.Format(dateLayout),
		DaysCount:          b.DaysCount,
		PackageType:        b.PackageType,
		KmPlan:             b.KmPlan,
		Coverage:           b.Coverage,
		ExtraDriver:        b.ExtraDriver,
		ExtraDriverUnder25: b.ExtraDriverUnder25,
		HomeDelivery:       b.HomeDelivery,
		HomePickup:         b.HomePickup,
		TotalPrice:         b.TotalPrice,
		DiscountAmount:     b.DiscountAmount,
		DiscountPct:        b.DiscountPct,
		CustomerFirstName:  b.CustomerFirstName,
		CustomerLastName:   b.CustomerLastName,
		CustomerPhone:      b.CustomerPhone,
		CustomerEmail:      b.CustomerEmail,
		Notes:              b.Notes.String,
		Status:             b.Status,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

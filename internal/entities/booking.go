package entities

import "time"

// BookingRequest is the public booking creation payload: the quote
// configuration plus customer identity. The server recomputes the price and
// never trusts a client-supplied total.
type BookingRequest struct {
	QuoteRequest

	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	CustomerBirthDate string `json:"customer_birth_date"`
	CustomerPhone     string `json:"customer_phone"`
	CustomerEmail     string `json:"customer_email"`
	DriverLicenseNo   string `json:"driver_license_no"`

	AddFirstName       string `json:"add_first_name,omitempty"`
	AddLastName        string `json:"add_last_name,omitempty"`
	AddBirthDate       string `json:"add_birth_date,omitempty"`
	AddDriverLicenseNo string `json:"add_driver_license_no,omitempty"`

	Notes string `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID                 string    `json:"id"`
	BookingCode        string    `json:"booking_code"`
	VehicleID          string    `json:"vehicle_id"`
	VehicleName        string    `json:"vehicle_name,omitempty"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	DaysCount          int       `json:"days_count"`
	PackageType        string    `json:"package_type"`
	KmPlan             string    `json:"km_plan"`
	Coverage           string    `json:"coverage"`
	ExtraDriver        bool      `json:"extra_driver"`
	ExtraDriverUnder25 bool      `json:"extra_driver_under25"`
	HomeDelivery       bool      `json:"home_delivery"`
	HomePickup         bool      `json:"home_pickup"`
	TotalPrice         string    `json:"total_price"`
	DiscountAmount     string    `json:"discount_amount"`
	DiscountPct        string    `json:"discount_pct"`
	CustomerFirstName  string    `json:"customer_first_name"`
	CustomerLastName   string    `json:"customer_last_name"`
	CustomerPhone      string    `json:"customer_phone"`
	CustomerEmail      string    `json:"customer_email"`
	Notes              string    `json:"notes,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BookingUpdate is the admin patch payload. Nil pointers leave fields
// untouched; any pricing-relevant change triggers a server-side recompute.
type BookingUpdate struct {
	StartDate          *string `json:"start_date,omitempty"`
	EndDate            *string `json:"end_date,omitempty"`
	PackageType        *string `json:"package_type,omitempty"`
	KmPlan             *string `json:"km_plan,omitempty"`
	Coverage           *string `json:"coverage,omitempty"`
	ExtraDriver        *bool   `json:"extra_driver,omitempty"`
	ExtraDriverUnder25 *bool   `json:"extra_driver_under25,omitempty"`
	HomeDelivery       *bool   `json:"home_delivery,omitempty"`
	HomePickup         *bool   `json:"home_pickup,omitempty"`
	Status             *string `json:"status,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

package db

import (
	"database/sql"
	"time"
)

// Booking lifecycle. PENDING may move to CONFIRMED or CANCELLED; both are
// terminal.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

const (
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

type Vehicle struct {
	ID                string
	Name              string
	Slug              string
	Type              string // CAR | VAN
	BasePriceDay      float64
	Quantity          int
	AvailableQuantity int
	ColorOptions      []string
	Seats             int
	Transmission      string
	FuelType          string
	ImageURL          sql.NullString
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Booking snapshots the rental configuration and the server-computed price.
// Money fields hold 2-decimal strings so reloads reproduce totals exactly.
type Booking struct {
	ID                 string
	BookingCode        string
	VehicleID          string
	StartDate          time.Time
	EndDate            time.Time
	DaysCount          int
	PackageType        string
	KmPlan             string
	Coverage           string
	ExtraDriver        bool
	ExtraDriverUnder25 bool
	HomeDelivery       bool
	HomePickup         bool
	TotalPrice         string
	DiscountAmount     string
	DiscountPct        string
	CustomerFirstName  string
	CustomerLastName   string
	CustomerBirthDate  time.Time
	CustomerPhone      string
	CustomerEmail      string
	DriverLicenseNo    string
	AddFirstName       sql.NullString
	AddLastName        sql.NullString
	AddBirthDate       sql.NullTime
	AddDriverLicenseNo sql.NullString
	Notes              sql.NullString
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type BlackoutDate struct {
	ID        string
	VehicleID string
	Date      time.Time
}

type Employee struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

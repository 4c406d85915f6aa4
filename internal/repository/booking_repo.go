package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cicorent/internal/db"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoAvailability  = errors.New("no units available for the requested period")
)

// BlackoutConflictError carries the blocked dates so the caller can adjust.
type BlackoutConflictError struct {
	Dates []time.Time
}

func (e *BlackoutConflictError) Error() string {
	days := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		days[i] = d.Format("2006-01-02")
	}
	return fmt.Sprintf("requested period includes blackout dates: %s", strings.Join(days, ", "))
}

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, booking_code, vehicle_id, start_date, end_date, days_count,
	package_type, km_plan, coverage, extra_driver, extra_driver_under25, home_delivery, home_pickup,
	total_price, discount_amount, discount_pct,
	customer_first_name, customer_last_name, customer_birth_date, customer_phone, customer_email, driver_license_no,
	add_first_name, add_last_name, add_birth_date, add_driver_license_no,
	notes, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.BookingCode, &b.VehicleID, &b.StartDate, &b.EndDate, &b.DaysCount,
		&b.PackageType, &b.KmPlan, &b.Coverage, &b.ExtraDriver, &b.ExtraDriverUnder25, &b.HomeDelivery, &b.HomePickup,
		&b.TotalPrice, &b.DiscountAmount, &b.DiscountPct,
		&b.CustomerFirstName, &b.CustomerLastName, &b.CustomerBirthDate, &b.CustomerPhone, &b.CustomerEmail, &b.DriverLicenseNo,
		&b.AddFirstName, &b.AddLastName, &b.AddBirthDate, &b.AddDriverLicenseNo,
		&b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListBookings() ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) GetBooking(id string) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error querying booking %s: %w", id, err)
	}
	return b, nil
}

// GetBookingByCode is email-gated: customers can only look up their own
// booking with the code plus the email used at creation.
func (r *BookingRepository) GetBookingByCode(code, email string) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1 AND customer_email = $2`
	b, err := scanBooking(r.DB.QueryRow(query, code, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error querying booking by code %s: %w", code, err)
	}
	return b, nil
}

// CountOverlapping counts active bookings whose range overlaps the requested
// one, both endpoints inclusive.
func (r *BookingRepository) CountOverlapping(vehicleID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_date <= $3
		  AND end_date >= $2`
	var count int
	if err := r.DB.QueryRow(query, vehicleID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}

// ListActiveBookingsInRange feeds the fully-booked-dates calendar derivation.
func (r *BookingRepository) ListActiveBookingsInRange(vehicleID string, start, end time.Time) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_date <= $3
		  AND end_date >= $2`
	rows, err := r.DB.Query(query, vehicleID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings in range: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

// nextBookingCodeTx does the read-modify-write on the shared counter inside
// the caller's transaction. The row lock guarantees two concurrent creations
// never observe the same value; gaps from aborted transactions are fine.
func nextBookingCodeTx(tx *sql.Tx) (string, error) {
	var id, last int
	err := tx.QueryRow(`SELECT id, last_value FROM booking_sequence LIMIT 1 FOR UPDATE`).Scan(&id, &last)
	if errors.Is(err, sql.ErrNoRows) {
		if err := tx.QueryRow(
			`INSERT INTO booking_sequence (last_value) VALUES (1) RETURNING last_value`,
		).Scan(&last); err != nil {
			return "", fmt.Errorf("error initializing booking sequence: %w", err)
		}
		return formatBookingCode(last), nil
	}
	if err != nil {
		return "", fmt.Errorf("error reading booking sequence: %w", err)
	}
	if err := tx.QueryRow(
		`UPDATE booking_sequence SET last_value = last_value + 1 WHERE id = $1 RETURNING last_value`, id,
	).Scan(&last); err != nil {
		return "", fmt.Errorf("error incrementing booking sequence: %w", err)
	}
	return formatBookingCode(last), nil
}

func formatBookingCode(n int) string {
	return fmt.Sprintf("08%04d", n)
}

// NextBookingCode increments the shared counter in its own transaction.
func (r *BookingRepository) NextBookingCode() (string, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return "", fmt.Errorf("error starting sequence transaction: %w", err)
	}
	defer tx.Rollback()

	code, err := nextBookingCodeTx(tx)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("error committing sequence transaction: %w", err)
	}
	return code, nil
}

// CreateWithAvailability creates a booking in a single transaction: lock the
// vehicle row, recount overlaps, re-check blackouts, draw the next code and
// insert. Two concurrent attempts for the last unit cannot both succeed.
func (r *BookingRepository) CreateWithAvailability(b *db.Booking) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	var quantity int
	err = tx.QueryRow(`SELECT quantity FROM vehicles WHERE id = $1 FOR UPDATE`, b.VehicleID).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrVehicleNotFound
	}
	if err != nil {
		return fmt.Errorf("error locking vehicle %s: %w", b.VehicleID, err)
	}

	var overlapping int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_date <= $3
		  AND end_date >= $2`,
		b.VehicleID, b.StartDate, b.EndDate,
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	if quantity-overlapping <= 0 {
		return ErrNoAvailability
	}

	rows, err := tx.Query(
		`SELECT date FROM blackout_dates WHERE vehicle_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date`,
		b.VehicleID, b.StartDate, b.EndDate,
	)
	if err != nil {
		return fmt.Errorf("error querying blackout dates: %w", err)
	}
	var blackouts []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning blackout date: %w", err)
		}
		blackouts = append(blackouts, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error after iterating blackout rows: %w", err)
	}
	rows.Close()
	if len(blackouts) > 0 {
		return &BlackoutConflictError{Dates: blackouts}
	}

	code, err := nextBookingCodeTx(tx)
	if err != nil {
		return err
	}
	b.BookingCode = code

	err = tx.QueryRow(`
		INSERT INTO bookings
		(booking_code, vehicle_id, start_date, end_date, days_count,
		 package_type, km_plan, coverage, extra_driver, extra_driver_under25, home_delivery, home_pickup,
		 total_price, discount_amount, discount_pct,
		 customer_first_name, customer_last_name, customer_birth_date, customer_phone, customer_email, driver_license_no,
		 add_first_name, add_last_name, add_birth_date, add_driver_license_no, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING id, created_at, updated_at`,
		b.BookingCode, b.VehicleID, b.StartDate, b.EndDate, b.DaysCount,
		b.PackageType, b.KmPlan, b.Coverage, b.ExtraDriver, b.ExtraDriverUnder25, b.HomeDelivery, b.HomePickup,
		b.TotalPrice, b.DiscountAmount, b.DiscountPct,
		b.CustomerFirstName, b.CustomerLastName, b.CustomerBirthDate, b.CustomerPhone, b.CustomerEmail, b.DriverLicenseNo,
		b.AddFirstName, b.AddLastName, b.AddBirthDate, b.AddDriverLicenseNo, b.Notes, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing booking transaction: %w", err)
	}
	return nil
}

func (r *BookingRepository) UpdateBooking(b *db.Booking) error {
	query := `
		UPDATE bookings
		SET start_date = $1, end_date = $2, days_count = $3, package_type = $4, km_plan = $5,
		    coverage = $6, extra_driver = $7, extra_driver_under25 = $8, home_delivery = $9,
		    home_pickup = $10, total_price = $11, discount_amount = $12, discount_pct = $13,
		    notes = $14, status = $15, updated_at = NOW()
		WHERE id = $16
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		b.StartDate, b.EndDate, b.DaysCount, b.PackageType, b.KmPlan,
		b.Coverage, b.ExtraDriver, b.ExtraDriverUnder25, b.HomeDelivery,
		b.HomePickup, b.TotalPrice, b.DiscountAmount, b.DiscountPct,
		b.Notes, b.Status, b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("error updating booking %s: %w", b.ID, err)
	}
	return nil
}

func (r *BookingRepository) DeleteBooking(id string) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

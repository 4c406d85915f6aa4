package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cicorent/internal/db"
)

var ErrBlackoutNotFound = errors.New("blackout date not found")

type BlackoutRepository struct {
	DB *sql.DB
}

func NewBlackoutRepository(database *sql.DB) *BlackoutRepository {
	return &BlackoutRepository{DB: database}
}

func (r *BlackoutRepository) ListBlackoutDates(vehicleID string) ([]db.BlackoutDate, error) {
	query := `SELECT id, vehicle_id, date FROM blackout_dates WHERE vehicle_id = $1 ORDER BY date`
	return r.queryBlackouts(query, vehicleID)
}

func (r *BlackoutRepository) ListBlackoutDatesInRange(vehicleID string, start, end time.Time) ([]db.BlackoutDate, error) {
	query := `
		SELECT id, vehicle_id, date FROM blackout_dates
		WHERE vehicle_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`
	return r.queryBlackouts(query, vehicleID, start, end)
}

func (r *BlackoutRepository) queryBlackouts(query string, args ...any) ([]db.BlackoutDate, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying blackout dates: %w", err)
	}
	defer rows.Close()

	var blackouts []db.BlackoutDate
	for rows.Next() {
		var b db.BlackoutDate
		if err := rows.Scan(&b.ID, &b.VehicleID, &b.Date); err != nil {
			return nil, fmt.Errorf("error scanning blackout date: %w", err)
		}
		blackouts = append(blackouts, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating blackout rows: %w", err)
	}
	return blackouts, nil
}

func (r *BlackoutRepository) CreateBlackoutDate(b *db.BlackoutDate) error {
	query := `INSERT INTO blackout_dates (vehicle_id, date) VALUES ($1, $2) RETURNING id`
	if err := r.DB.QueryRow(query, b.VehicleID, b.Date).Scan(&b.ID); err != nil {
		return fmt.Errorf("error inserting blackout date: %w", err)
	}
	return nil
}

// DeleteBlackoutDate removes a blackout explicitly; there is no expiry.
func (r *BlackoutRepository) DeleteBlackoutDate(id string) error {
	result, err := r.DB.Exec(`DELETE FROM blackout_dates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting blackout date %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrBlackoutNotFound
	}
	return nil
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"cicorent/internal/db"

	"github.com/lib/pq"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

const vehicleColumns = `id, name, slug, type, base_price_day, quantity, available_quantity,
	color_options, seats, transmission, fuel_type, image_url, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (*db.Vehicle, error) {
	var v db.Vehicle
	err := row.Scan(
		&v.ID, &v.Name, &v.Slug, &v.Type, &v.BasePriceDay, &v.Quantity, &v.AvailableQuantity,
		pq.Array(&v.ColorOptions), &v.Seats, &v.Transmission, &v.FuelType, &v.ImageURL,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) ListVehicles() ([]db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY name`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) GetVehicle(id string) (*db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("error querying vehicle %s: %w", id, err)
	}
	return v, nil
}

func (r *VehicleRepository) GetVehicleBySlug(slug string) (*db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE slug = $1`
	v, err := scanVehicle(r.DB.QueryRow(query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("error querying vehicle by slug %s: %w", slug, err)
	}
	return v, nil
}

func (r *VehicleRepository) CreateVehicle(v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles
		(name, slug, type, base_price_day, quantity, available_quantity, color_options, seats, transmission, fuel_type, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		v.Name, v.Slug, v.Type, v.BasePriceDay, v.Quantity, v.AvailableQuantity,
		pq.Array(v.ColorOptions), v.Seats, v.Transmission, v.FuelType, v.ImageURL,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *VehicleRepository) UpdateVehicle(v *db.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $1, slug = $2, type = $3, base_price_day = $4, quantity = $5,
		    available_quantity = $6, color_options = $7, seats = $8, transmission = $9,
		    fuel_type = $10, image_url = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		v.Name, v.Slug, v.Type, v.BasePriceDay, v.Quantity, v.AvailableQuantity,
		pq.Array(v.ColorOptions), v.Seats, v.Transmission, v.FuelType, v.ImageURL,
		v.ID,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("error updating vehicle %s: %w", v.ID, err)
	}
	return nil
}

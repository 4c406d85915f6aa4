package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"cicorent/internal/db"
	"cicorent/internal/repository"
)

// Resets the database to the initial fleet, the default employees and a fresh
// booking sequence. Intended for local development and first deploys.

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		base_price_day NUMERIC(10,2) NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		available_quantity INTEGER NOT NULL DEFAULT 0,
		color_options TEXT[] NOT NULL DEFAULT '{}',
		seats INTEGER NOT NULL DEFAULT 5,
		transmission TEXT NOT NULL DEFAULT 'MANUAL',
		fuel_type TEXT NOT NULL DEFAULT 'GASOLINE',
		image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		booking_code TEXT NOT NULL UNIQUE,
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		days_count INTEGER NOT NULL,
		package_type TEXT NOT NULL,
		km_plan TEXT NOT NULL,
		coverage TEXT NOT NULL,
		extra_driver BOOLEAN NOT NULL DEFAULT FALSE,
		extra_driver_under25 BOOLEAN NOT NULL DEFAULT FALSE,
		home_delivery BOOLEAN NOT NULL DEFAULT FALSE,
		home_pickup BOOLEAN NOT NULL DEFAULT FALSE,
		total_price NUMERIC(10,2) NOT NULL,
		discount_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		discount_pct NUMERIC(5,2) NOT NULL DEFAULT 0,
		customer_first_name TEXT NOT NULL,
		customer_last_name TEXT NOT NULL,
		customer_birth_date DATE NOT NULL,
		customer_phone TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		driver_license_no TEXT NOT NULL,
		add_first_name TEXT,
		add_last_name TEXT,
		add_birth_date DATE,
		add_driver_license_no TEXT,
		notes TEXT,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_vehicle_dates_idx
		ON bookings (vehicle_id, start_date, end_date)`,
	`CREATE TABLE IF NOT EXISTS blackout_dates (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		UNIQUE (vehicle_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS booking_sequence (
		id SERIAL PRIMARY KEY,
		last_value INTEGER NOT NULL DEFAULT 0
	)`,
}

func seedVehicles(repo *repository.VehicleRepository) error {
	fleet := []db.Vehicle{
		{
			Name:              "Volkswagen Polo",
			Slug:              "volkswagen-polo",
			Type:              "CAR",
			BasePriceDay:      60,
			Quantity:          2,
			AvailableQuantity: 2,
			ColorOptions:      []string{"Bianco", "Nero"},
			Seats:             5,
			Transmission:      "MANUAL",
			FuelType:          "GASOLINE",
		},
		{
			Name:              "Volkswagen Crafter L3H3",
			Slug:              "volkswagen-crafter",
			Type:              "VAN",
			BasePriceDay:      80,
			Quantity:          2,
			AvailableQuantity: 2,
			ColorOptions:      []string{"Bianco"},
			Seats:             3,
			Transmission:      "MANUAL",
			FuelType:          "DIESEL",
		},
		{
			Name:              "Peugeot Boxer III L2H2",
			Slug:              "peugeot-boxer-iii",
			Type:              "VAN",
			BasePriceDay:      80,
			Quantity:          3,
			AvailableQuantity: 3,
			ColorOptions:      []string{"Bianco"},
			Seats:             3,
			Transmission:      "MANUAL",
			FuelType:          "DIESEL",
		},
	}
	for i := range fleet {
		if err := repo.CreateVehicle(&fleet[i]); err != nil {
			return err
		}
		log.Printf("Seeded vehicle %s (%s)", fleet[i].Name, fleet[i].ID)
	}
	return nil
}

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	for _, stmt := range schema {
		if _, err := database.Exec(stmt); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
	}

	for _, table := range []string{"bookings", "blackout_dates", "vehicles", "employees", "booking_sequence"} {
		if _, err := database.Exec("DELETE FROM " + table); err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	if err := seedVehicles(repository.NewVehicleRepository(database)); err != nil {
		log.Fatalf("Failed to seed vehicles: %v", err)
	}

	employeeRepo := repository.NewEmployeeRepository(database)
	for _, e := range []struct{ username, password, role string }{
		{"admin", "admin", db.RoleAdmin},
		{"staff", "staff", db.RoleStaff},
	} {
		if _, err := employeeRepo.CreateEmployee(e.username, e.password, e.role); err != nil {
			log.Fatalf("Failed to seed employee %s: %v", e.username, err)
		}
		log.Printf("Seeded employee %s (%s)", e.username, e.role)
	}

	if _, err := database.Exec(`INSERT INTO booking_sequence (last_value) VALUES (0)`); err != nil {
		log.Fatalf("Failed to initialize booking sequence: %v", err)
	}

	log.Println("Database seeded")
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"cicorent/internal/db"

	"golang.org/x/crypto/bcrypt"
)

type EmployeeRepository interface {
	GetByUsername(username string) (*db.Employee, error)
	GetByID(id string) (*db.Employee, error)
	CreateEmployee(username, password, role string) (*db.Employee, error)
}

type employeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(database *sql.DB) EmployeeRepository {
	return &employeeRepository{db: database}
}

func (r *employeeRepository) GetByUsername(username string) (*db.Employee, error) {
	var e db.Employee
	err := r.db.QueryRow(
		`SELECT id, username, password, role, created_at, updated_at FROM employees WHERE username = $1`,
		username,
	).Scan(&e.ID, &e.Username, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying employee %s: %w", username, err)
	}
	return &e, nil
}

func (r *employeeRepository) GetByID(id string) (*db.Employee, error) {
	var e db.Employee
	err := r.db.QueryRow(
		`SELECT id, username, password, role, created_at, updated_at FROM employees WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Username, &e.PasswordHash, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying employee %s: %w", id, err)
	}
	return &e, nil
}

func (r *employeeRepository) CreateEmployee(username, password, role string) (*db.Employee, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	e := db.Employee{Username: username, PasswordHash: string(hashed), Role: role}
	err = r.db.QueryRow(
		`INSERT INTO employees (username, password, role) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		username, string(hashed), role,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting employee: %w", err)
	}
	return &e, nil
}

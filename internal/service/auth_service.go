package service

import (
	"errors"
	"os"
	"time"

	"cicorent/internal/db"
	"cicorent/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(username, password string) (string, *db.Employee, error)
	GetEmployee(id string) (*db.Employee, error)
	CreateEmployee(username, password, role string) (*db.Employee, error)
}

type authService struct {
	repo repository.EmployeeRepository
}

func NewAuthService(repo repository.EmployeeRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Login(username, password string) (string, *db.Employee, error) {
	employee, err := s.repo.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if employee == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", nil, errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"employee_id": employee.ID,
		"username":    employee.Username,
		"role":        employee.Role,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, employee, nil
}

func (s *authService) GetEmployee(id string) (*db.Employee, error) {
	return s.repo.GetByID(id)
}

func (s *authService) CreateEmployee(username, password, role string) (*db.Employee, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password cannot be empty")
	}
	if role != db.RoleStaff && role != db.RoleAdmin {
		return nil, errors.New("role must be STAFF or ADMIN")
	}
	return s.repo.CreateEmployee(username, password, role)
}

package api

import (
	"errors"
	"net/http"

	"cicorent/internal/auth"
	"cicorent/internal/service"
)

type AdminAuthHandler struct {
	Auth service.AuthService
}

func NewAdminAuthHandler(auth service.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{Auth: auth}
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	token, employee, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": employee.Username,
		"role":     employee.Role,
	})
}

// Me returns the employee behind the current token. The console uses it to
// restore a session after reload.
func (h *AdminAuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := auth.EmployeeIDFromContext(r.Context())
	employee, err := h.Auth.GetEmployee(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if employee == nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "employee not found"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"id":       employee.ID,
		"username": employee.Username,
		"role":     employee.Role,
	})
}

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusboard/lostfound/internal/account"
	"github.com/campusboard/lostfound/internal/auth"
)

// AuthHandler handles admin authentication for the review API.
type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
}

type adminLoginRequest struct {
	AdminName string `json:"admin_name"`
	Password  string `json:"password"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.AdminName == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "admin name and password required")
		return
	}

	admin, err := account.AdminLogin(r.Context(), h.DB, req.AdminName, req.Password)
	if errors.Is(err, account.ErrInvalidCredentials) {
		slog.Warn("admin login failed", "admin_name", req.AdminName, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateAdminToken(h.JWTSecret, admin.ID, admin.Name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("admin logged in", "admin", admin.Name)
	jsonResponse(w, http.StatusOK, adminLoginResponse{Token: token})
}

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusboard/lostfound/internal/account"
	"github.com/campusboard/lostfound/internal/model"
)

// ReviewHandler handles the registration review endpoints (admin only).
type ReviewHandler struct {
	DB *sql.DB
}

type reviewRequest struct {
	IDs []int64 `json:"ids"`
}

// List handles GET /api/review.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	pending, err := account.ListPending(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list pending accounts", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list pending accounts")
		return
	}
	if pending == nil {
		pending = []model.PendingAccount{}
	}
	jsonResponse(w, http.StatusOK, pending)
}

// Passed handles POST /api/review/passed: each listed pending account becomes
// a member. Unknown ids are skipped, not errors.
func (h *ReviewHandler) Passed(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := account.Approve(r.Context(), h.DB, req.IDs)
	if err != nil {
		slog.Error("failed to approve accounts", "error", err)
		jsonResponse(w, http.StatusOK, reviewResult{Success: false, Message: "approval failed"})
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("accounts approved", "admin", claims.AdminName, "count", n)
	jsonResponse(w, http.StatusOK, reviewResult{Success: true, Message: "accounts approved and moved to members"})
}

// Failed handles POST /api/review/failed: each listed pending account is
// deleted. An empty id list is reported as a failure.
func (h *ReviewHandler) Failed(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := account.Reject(r.Context(), h.DB, req.IDs)
	if errors.Is(err, account.ErrNoIDs) {
		jsonResponse(w, http.StatusOK, reviewResult{Success: false, Message: "no account ids provided"})
		return
	}
	if err != nil {
		slog.Error("failed to reject accounts", "error", err)
		jsonResponse(w, http.StatusOK, reviewResult{Success: false, Message: "rejection failed"})
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("accounts rejected", "admin", claims.AdminName, "count", n)
	jsonResponse(w, http.StatusOK, reviewResult{Success: true, Message: "accounts rejected"})
}

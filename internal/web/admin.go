package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusboard/lostfound/internal/account"
	"github.com/campusboard/lostfound/internal/auth"
	"github.com/campusboard/lostfound/internal/model"
	"github.com/campusboard/lostfound/internal/store"
)

type adminData struct {
	PageData
	Pending []model.PendingAccount
	Members []model.Member
}

// AdminLoginPage shows the administrator login form.
func (s *Server) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	if AdminClaims(r.Context()) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "admin_login.html", &PageData{Title: "Administrator Login"})
}

// AdminLoginSubmit handles the administrator login form.
func (s *Server) AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("admin_name")
	password := r.FormValue("password")

	admin, err := account.AdminLogin(r.Context(), s.DB, name, password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			s.Templates.Render(w, "admin_login.html", &PageData{
				Title: "Administrator Login",
				Error: err.Error(),
			})
			return
		}
		slog.Error("failed to log admin in", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	token, err := auth.GenerateAdminToken(s.JWTSecret, admin.ID, admin.Name)
	if err != nil {
		slog.Error("failed to generate admin token", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	setSessionCookie(w, "admin_token", token)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// AdminPage shows the pending account review queue. Approvals and
// rejections are submitted from the page to the review API.
func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	claims := AdminClaims(r.Context())
	if claims == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	pending, err := account.ListPending(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list pending accounts", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	members, err := store.ListMembers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list members", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	s.Templates.Render(w, "admin.html", &adminData{
		PageData: PageData{Title: "Account Review", Admin: claims},
		Pending:  pending,
		Members:  members,
	})
}

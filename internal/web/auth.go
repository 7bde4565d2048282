package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/campusboard/lostfound/internal/account"
	"github.com/campusboard/lostfound/internal/auth"
	"github.com/campusboard/lostfound/internal/store"
)

type indexData struct {
	PageData
	Notice string
}

// Index shows the login and registration forms.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	if MemberClaims(r.Context()) != nil {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "index.html", &indexData{
		PageData: PageData{Title: "Lost and Found"},
	})
}

// Login handles the member login form.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	member, err := account.Login(r.Context(), s.DB, email, password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			s.Templates.Render(w, "index.html", &indexData{
				PageData: PageData{Title: "Lost and Found", Error: err.Error()},
			})
			return
		}
		slog.Error("failed to log member in", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	token, err := auth.GenerateMemberToken(s.JWTSecret, member.ID, member.Username, member.Email)
	if err != nil {
		slog.Error("failed to generate member token", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	setSessionCookie(w, "token", token)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// Register handles the registration form. New accounts land in the
// pending queue until an administrator approves them.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	reg := account.Registration{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Contact:  r.FormValue("contact"),
		Address:  r.FormValue("address"),
	}

	if _, err := account.Register(r.Context(), s.DB, reg); err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			s.Templates.Render(w, "index.html", &indexData{
				PageData: PageData{Title: "Lost and Found", Error: err.Error()},
			})
			return
		}
		slog.Error("failed to register account", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	s.Templates.Render(w, "index.html", &indexData{
		PageData: PageData{Title: "Lost and Found"},
		Notice:   "registration received, an administrator will review it shortly",
	})
}

// Logout revokes the session tokens and clears both cookies.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{"token", "admin_token"} {
		claims := s.cookieClaims(r, name)
		if claims != nil && claims.ExpiresAt != nil {
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
		clearSessionCookie(w, name)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// About shows the static about page.
func (s *Server) About(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "about.html", &PageData{
		Title:  "About",
		Member: MemberClaims(r.Context()),
		Admin:  AdminClaims(r.Context()),
	})
}

func setSessionCookie(w http.ResponseWriter, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenExpiry),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

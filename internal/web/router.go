package web

import (
	"database/sql"
	"net/http"

	"github.com/campusboard/lostfound/internal/images"
	webembed "github.com/campusboard/lostfound/web"
)

// NewRouter builds the server-rendered page routes.
func NewRouter(db *sql.DB, imgs *images.Store, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{DB: db, Images: imgs, Templates: templates, JWTSecret: jwtSecret}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.Index)
	mux.HandleFunc("POST /login", s.Login)
	mux.HandleFunc("POST /register", s.Register)
	// The forms live on the index page; stray GETs bounce there.
	mux.HandleFunc("GET /login", redirectHome)
	mux.HandleFunc("GET /register", redirectHome)
	mux.HandleFunc("GET /logout", s.Logout)
	mux.HandleFunc("GET /about", s.About)

	mux.HandleFunc("GET /home", s.Home)
	mux.HandleFunc("GET /add", s.AddPage)
	mux.HandleFunc("POST /add", s.AddSubmit)
	mux.HandleFunc("GET /update", s.UpdatePage)
	mux.HandleFunc("POST /update", s.UpdateSubmit)
	mux.HandleFunc("POST /delete/{id}", s.DeleteSubmit)

	mux.HandleFunc("GET /search", s.SearchPage)
	mux.HandleFunc("POST /search", s.SearchSubmit)
	mux.HandleFunc("GET /images/{name}", s.ServeImage)

	mux.HandleFunc("GET /admin/login", s.AdminLoginPage)
	mux.HandleFunc("POST /admin/login", s.AdminLoginSubmit)
	mux.HandleFunc("GET /admin", s.AdminPage)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(webembed.StaticFS())))

	return s.WithSession(mux), nil
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

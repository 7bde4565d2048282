package api

import (
	"database/sql"
	"net/http"

	"github.com/campusboard/lostfound/internal/images"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, imgs *images.Store, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	reviewHandler := &ReviewHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db, Images: imgs}

	adminMW := AdminAuthMiddleware(jwtSecret, db)

	// Public: admin login and item search.
	mux.HandleFunc("POST /api/admin/login", authHandler.AdminLogin)
	mux.HandleFunc("GET /api/items", itemsHandler.Search)

	// Review queue (admin only).
	mux.Handle("GET /api/review", adminMW(http.HandlerFunc(reviewHandler.List)))
	mux.Handle("POST /api/review/passed", adminMW(http.HandlerFunc(reviewHandler.Passed)))
	mux.Handle("POST /api/review/failed", adminMW(http.HandlerFunc(reviewHandler.Failed)))

	return mux
}

package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/campusboard/lostfound/internal/images"
	"github.com/campusboard/lostfound/internal/item"
	"github.com/campusboard/lostfound/internal/model"
)

// ItemsHandler handles the public lost-item search endpoint.
type ItemsHandler struct {
	DB     *sql.DB
	Images *images.Store
}

// Search handles GET /api/items. All criteria are optional query parameters;
// without any, every report is returned, newest first.
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.SearchFilter{
		County:   q.Get("county"),
		District: q.Get("district"),
		Location: q.Get("location"),
		Date:     q.Get("date"),
		Category: q.Get("category"),
	}

	items, err := item.Search(r.Context(), h.DB, h.Images, filter)
	if err != nil {
		slog.Error("failed to search items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to search items")
		return
	}
	if items == nil {
		items = []model.LostItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

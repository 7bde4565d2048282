package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusboard/lostfound/internal/imaging"
	"github.com/campusboard/lostfound/internal/item"
	"github.com/campusboard/lostfound/internal/model"
	"github.com/campusboard/lostfound/internal/store"
)

// maxUploadSize limits in-memory multipart parsing for item photos.
const maxUploadSize = 10 << 20

type itemsData struct {
	PageData
	Items []model.LostItem
}

type itemFormData struct {
	PageData
	Item *model.LostItem
}

type searchData struct {
	PageData
	Items  []model.LostItem
	Filter model.SearchFilter
}

// Home lists the logged-in member's own reports.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	claims := MemberClaims(r.Context())
	if claims == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	items, err := item.ListForMember(r.Context(), s.DB, s.Images, claims.UserID)
	if err != nil {
		slog.Error("failed to list member items", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	s.Templates.Render(w, "home.html", &itemsData{
		PageData: PageData{Title: "My Reports", Member: claims},
		Items:    items,
	})
}

// AddPage shows the new report form.
func (s *Server) AddPage(w http.ResponseWriter, r *http.Request) {
	claims := MemberClaims(r.Context())
	if claims == nil {
		s.renderError(w, r, item.ErrNotAuthenticated.Error())
		return
	}

	s.Templates.Render(w, "add.html", &PageData{Title: "Report Lost Item", Member: claims})
}

// AddSubmit creates a new report from the form.
func (s *Server) AddSubmit(w http.ResponseWriter, r *http.Request) {
	claims := MemberClaims(r.Context())
	if claims == nil {
		s.renderError(w, r, item.ErrNotAuthenticated.Error())
		return
	}

	up, err := s.uploadFromRequest(r)
	if err != nil {
		s.renderError(w, r, "the uploaded photo could not be read")
		return
	}

	if _, err := item.Create(r.Context(), s.DB, s.Images, claims.UserID, formFields(r), up); err != nil {
		slog.Error("failed to create item", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// UpdatePage shows the edit form for an existing report, prefilled.
func (s *Server) UpdatePage(w http.ResponseWriter, r *http.Request) {
	claims := MemberClaims(r.Context())
	if claims == nil {
		s.renderError(w, r, item.ErrNotAuthenticated.Error())
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("item_id"), 10, 64)
	if err != nil {
		s.renderError(w, r, "item not found")
		return
	}

	it, err := store.GetLostItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}
	if it == nil {
		s.renderError(w, r, "item not found")
		return
	}
	it.ImageExists = s.Images.Exists(it.Image)

	s.Templates.Render(w, "update.html", &itemFormData{
		PageData: PageData{Title: "Edit Report", Member: claims},
		Item:     it,
	})
}

// UpdateSubmit applies the edit form to an existing report.
func (s *Server) UpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := MemberClaims(r.Context())
	if claims == nil {
		s.renderError(w, r, item.ErrNotAuthenticated.Error())
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("item_id"), 10, 64)
	if err != nil {
		s.renderError(w, r, "item not found")
		return
	}

	up, err := s.uploadFromRequest(r)
	if err != nil {
		s.renderError(w, r, "the uploaded photo could not be read")
		return
	}

	if _, err := item.Update(r.Context(), s.DB, s.Images, id, formFields(r), up); err != nil {
		switch {
		case errors.Is(err, item.ErrNotFound):
			s.renderError(w, r, "item not found")
		case errors.Is(err, item.ErrImageStore):
			s.renderError(w, r, item.ErrImageStore.Error())
		default:
			slog.Error("failed to update item", "error", err)
			s.renderError(w, r, "something went wrong, try again later")
		}
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// DeleteSubmit removes a report. Only the owner may delete; attempts on
// someone else's report just bounce back to the member's own list.
func (s *Server) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := MemberClaims(r.Context())
	if claims == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderError(w, r, "item not found")
		return
	}

	if err := item.Delete(r.Context(), s.DB, s.Images, claims.UserID, id); err != nil {
		switch {
		case errors.Is(err, item.ErrNotOwner):
			// Silent bounce back to the member's own list.
		case errors.Is(err, item.ErrNotFound):
			s.renderError(w, r, "item not found")
			return
		default:
			slog.Error("failed to delete item", "error", err)
			s.renderError(w, r, "something went wrong, try again later")
			return
		}
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// SearchPage shows the public search form with every report listed,
// newest first. Submitting the form narrows the list down.
func (s *Server) SearchPage(w http.ResponseWriter, r *http.Request) {
	items, err := item.Search(r.Context(), s.DB, s.Images, model.SearchFilter{})
	if err != nil {
		slog.Error("failed to list items", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	s.Templates.Render(w, "search.html", &searchData{
		PageData: PageData{
			Title:  "Search",
			Member: MemberClaims(r.Context()),
			Admin:  AdminClaims(r.Context()),
		},
		Items: items,
	})
}

// SearchSubmit runs a search and renders the matching reports.
func (s *Server) SearchSubmit(w http.ResponseWriter, r *http.Request) {
	filter := model.SearchFilter{
		County:   r.FormValue("county"),
		District: r.FormValue("district"),
		Location: r.FormValue("location"),
		Date:     r.FormValue("date"),
		Category: r.FormValue("category"),
	}

	items, err := item.Search(r.Context(), s.DB, s.Images, filter)
	if err != nil {
		slog.Error("failed to search items", "error", err)
		s.renderError(w, r, "something went wrong, try again later")
		return
	}

	s.Templates.Render(w, "search.html", &searchData{
		PageData: PageData{
			Title:  "Search",
			Member: MemberClaims(r.Context()),
			Admin:  AdminClaims(r.Context()),
		},
		Items:  items,
		Filter: filter,
	})
}

// ServeImage serves a stored item photo by file name.
func (s *Server) ServeImage(w http.ResponseWriter, r *http.Request) {
	path, err := s.Images.FilePath(r.PathValue("name"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}

// formFields reads the shared report attributes out of a submitted form.
func formFields(r *http.Request) item.Fields {
	return item.Fields{
		County:   r.FormValue("county"),
		District: r.FormValue("district"),
		Location: r.FormValue("location"),
		LostDate: r.FormValue("lost_date"),
		Category: r.FormValue("category"),
		Note:     r.FormValue("note"),
	}
}

// uploadFromRequest extracts and normalizes an optional photo upload.
// It returns (nil, nil) when the form carries no file.
func (s *Server) uploadFromRequest(r *http.Request) (*item.Upload, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		// Plain forms without a file input still go through here.
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		return nil, nil
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		return nil, err
	}

	return &item.Upload{Filename: header.Filename, Data: bytes.NewReader(processed)}, nil
}

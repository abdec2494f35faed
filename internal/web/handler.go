// Package web serves the catalog as a server-rendered HTML page: the input
// form, the filtered table and both aggregate charts.
package web

import (
	"errors"
	"net/http"

	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/render"

	"go.uber.org/zap"
)

type Handler struct {
	manager *catalog.Manager
	logger  *zap.Logger
}

func NewHandler(manager *catalog.Manager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{manager: manager, logger: logger}
}

// Register mounts the page routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /books", h.Submit)
	mux.HandleFunc("POST /books/{id}/delete", h.Delete)
	mux.Handle("GET /static/", render.StaticHandler())
}

// Index handles GET /. An edit parameter naming a known book pre-fills the
// form; an unknown one is ignored.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := h.newPage(r)
	if id := r.URL.Query().Get("edit"); id != "" {
		if f, ok := h.manager.BeginEdit(id); ok {
			page.Form = f
		}
	}
	h.write(w, http.StatusOK, page)
}

// Submit handles POST /books. An empty hidden id adds a book, any other id
// edits it in place.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	f := book.Fields{
		ID:       r.PostForm.Get("id"),
		Title:    r.PostForm.Get("title"),
		Author:   r.PostForm.Get("author"),
		ISBN:     r.PostForm.Get("isbn"),
		Year:     r.PostForm.Get("year"),
		Tags:     r.PostForm.Get("tags"),
		Category: r.PostForm.Get("category"),
		Rating:   r.PostForm.Get("rating"),
	}

	_, err := h.manager.Submit(r.Context(), f)
	switch {
	case err == nil, errors.Is(err, book.ErrNotFound):
		// an edit whose target vanished is dropped without a message
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, book.ErrValidation):
		page := h.newPage(r)
		page.Form = f
		page.Alert = book.ErrValidation.Error()
		h.write(w, http.StatusUnprocessableEntity, page)
	default:
		h.logger.Error("saving book failed", zap.String("id", f.ID), zap.Error(err))
		http.Error(w, "could not save book", http.StatusInternalServerError)
	}
}

// Delete handles POST /books/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Remove(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("deleting book failed", zap.String("id", r.PathValue("id")), zap.Error(err))
		http.Error(w, "could not delete book", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) newPage(r *http.Request) *render.Page {
	page := render.NewPage(h.manager.Options())
	page.Query = catalog.QueryFromRequest(r)
	if err := h.manager.Draw(page, page.Query); err != nil {
		h.logger.Warn("drawing page failed", zap.Error(err))
	}
	return page
}

func (h *Handler) write(w http.ResponseWriter, status int, page *render.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(w); err != nil {
		h.logger.Error("rendering page failed", zap.Error(err))
	}
}

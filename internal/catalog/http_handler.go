package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"

	"go.uber.org/zap"
)

// bookRequest is the JSON body of create and update. Year and rating may be
// numbers or strings, tags a comma-separated string or an array.
type bookRequest struct {
	Title    string      `json:"title"`
	Author   string      `json:"author"`
	ISBN     string      `json:"isbn"`
	Year     interface{} `json:"year"`
	Tags     interface{} `json:"tags"`
	Category string      `json:"category"`
	Rating   interface{} `json:"rating"`
}

func (req bookRequest) fields() book.Fields {
	return book.Fields{
		Title:    req.Title,
		Author:   req.Author,
		ISBN:     req.ISBN,
		Year:     text(req.Year),
		Tags:     text(req.Tags),
		Category: req.Category,
		Rating:   text(req.Rating),
	}
}

func text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, text(p))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

// HTTPHandler exposes the catalog as a JSON API.
type HTTPHandler struct {
	manager *Manager
}

func NewHTTPHandler(manager *Manager) *HTTPHandler {
	return &HTTPHandler{manager: manager}
}

// Register mounts the API routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/books", h.List)
	mux.HandleFunc("POST /api/books", h.Create)
	mux.HandleFunc("GET /api/books/{id}", h.Get)
	mux.HandleFunc("PUT /api/books/{id}", h.Update)
	mux.HandleFunc("DELETE /api/books/{id}", h.Delete)
	mux.HandleFunc("GET /api/stats/categories", h.CategoryStats)
	mux.HandleFunc("GET /api/stats/years", h.YearStats)
}

// QueryFromRequest reads q, category and sort from the URL.
func QueryFromRequest(r *http.Request) Query {
	query := r.URL.Query()
	return Query{
		Search:       query.Get("q"),
		Category:     query.Get("category"),
		SortByRating: query.Get("sort") == "rating",
	}
}

// List handles GET /api/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books := h.manager.Find(QueryFromRequest(r))
	httpx.JSONSuccessWithRequest(r, w, books, map[string]interface{}{
		"total": len(books),
	})
}

// Get handles GET /api/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, b, nil)
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON", nil)
		return
	}

	b, err := h.manager.Add(r.Context(), req.fields())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccessCreatedWithRequest(r, w, b)
}

// Update handles PUT /api/books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON", nil)
		return
	}

	b, err := h.manager.Update(r.Context(), r.PathValue("id"), req.fields())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, b, nil)
}

// Delete handles DELETE /api/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Remove(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// CategoryStats handles GET /api/stats/categories
func (h *HTTPHandler) CategoryStats(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccessWithRequest(r, w, Chart{
		Region: RegionCategory,
		Title:  "Books per Category",
		Counts: h.manager.CategoryCounts(),
	}, nil)
}

// YearStats handles GET /api/stats/years
func (h *HTTPHandler) YearStats(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccessWithRequest(r, w, Chart{
		Region: RegionYear,
		Title:  "Books per Publication Year",
		Counts: h.manager.YearCounts(),
	}, nil)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *book.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]httpx.ErrorDetail, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, httpx.ErrorDetail{Field: f.Field, Message: f.Message})
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", book.ErrValidation.Error(), details)
	case errors.Is(err, book.ErrNotFound):
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	default:
		h.manager.logger.Error("catalog request failed", zap.Error(err))
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

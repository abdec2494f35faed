package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"bookcatalog/internal/book"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TestFields is a complete, valid form submission
var TestFields = book.Fields{
	Title:    "Test Book Title",
	Author:   "Test Author",
	ISBN:     "978-0-123456-78-9",
	Year:     "2001",
	Tags:     "test, fixture",
	Category: "Fiction",
	Rating:   "4",
}

// FieldsWith returns a copy of TestFields for another book
func FieldsWith(title, category, year string) book.Fields {
	f := TestFields
	f.Title = title
	f.Category = category
	f.Year = year
	return f
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewFormRequest creates a urlencoded form POST for testing
func NewFormRequest(path string, f book.Fields) *http.Request {
	form := url.Values{}
	form.Set("id", f.ID)
	form.Set("title", f.Title)
	form.Set("author", f.Author)
	form.Set("isbn", f.ISBN)
	form.Set("year", f.Year)
	form.Set("tags", f.Tags)
	form.Set("category", f.Category)
	form.Set("rating", f.Rating)

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the "data" member of a success envelope
func (r RecordResponse) Data() interface{} {
	return r.Body["data"]
}

// ErrorCode returns error.code of a failure envelope
func (r RecordResponse) ErrorCode() string {
	e, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}

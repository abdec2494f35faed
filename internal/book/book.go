package book

import (
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"strings"
)

// ErrNotFound is returned when no book has the requested id.
var ErrNotFound = errors.New("book not found")

// Book represents one catalog entry.
type Book struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	ISBN     string   `json:"isbn"`
	Year     string   `json:"year"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
	Rating   *float64 `json:"rating,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (b Book) Clone() Book {
	c := b
	c.Tags = slices.Clone(b.Tags)
	if b.Rating != nil {
		r := *b.Rating
		c.Rating = &r
	}
	return c
}

// Fields returns the book as input-surface values, tags joined for editing.
func (b Book) Fields() Fields {
	f := Fields{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		ISBN:     b.ISBN,
		Year:     b.Year,
		Tags:     strings.Join(b.Tags, ", "),
		Category: b.Category,
	}
	if b.Rating != nil {
		f.Rating = strconv.FormatFloat(*b.Rating, 'f', -1, 64)
	}
	return f
}

// UnmarshalJSON accepts blobs written by older clients, where the id was a
// millisecond timestamp number and the rating a raw form string.
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	var raw struct {
		plain
		ID     json.RawMessage `json:"id"`
		Rating json.RawMessage `json:"rating"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	rating, err := decodeRating(raw.Rating)
	if err != nil {
		return err
	}

	*b = Book(raw.plain)
	b.ID = id
	b.Rating = rating
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", nil
	}
	if strings.HasPrefix(s, `"`) {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		return id, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func decodeRating(raw json.RawMessage) (*float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return nil, err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			// unparseable legacy ratings are dropped rather than failing the whole blob
			return nil, nil
		}
		return &v, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

package book

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("please fill out all required fields")

// Categories are the labels the input surfaces offer. The core accepts any
// non-empty category.
var Categories = []string{"Fiction", "Nonfiction", "Science", "History", "Biography", "Fantasy", "Mystery", "Other"}

// Fields holds the raw values of the input surface. ID is the hidden field
// that tells an edit submission apart from an add.
type Fields struct {
	ID       string `form:"id" json:"id,omitempty"`
	Title    string `form:"title" json:"title" validate:"required"`
	Author   string `form:"author" json:"author" validate:"required"`
	ISBN     string `form:"isbn" json:"isbn" validate:"required"`
	Year     string `form:"year" json:"year" validate:"required"`
	Tags     string `form:"tags" json:"tags"`
	Category string `form:"category" json:"category" validate:"required"`
	Rating   string `form:"rating" json:"rating,omitempty" validate:"required,numeric"`
}

// TagPolicy decides what happens to empty tokens such as the middle of "a,,b".
type TagPolicy int

const (
	DropEmptyTags TagPolicy = iota
	KeepEmptyTags
)

// Options switch the optional parts of the record format.
type Options struct {
	RatingEnabled bool
	TagPolicy     TagPolicy
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
}

// Validate checks required-field presence. Rating is only checked when the
// rating feature is enabled.
func Validate(f Fields, opts Options) error {
	var err error
	if opts.RatingEnabled {
		err = validate.Struct(f)
	} else {
		err = validate.StructExcept(f, "Rating")
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "numeric":
			message = fmt.Sprintf("%s must be a number", fe.Field())
		default:
			message = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message})
	}
	return out
}

// Build turns validated input into a Book. The returned book carries f.ID
// unchanged; assigning identity is up to the caller.
func Build(f Fields, opts Options) (Book, error) {
	if err := Validate(f, opts); err != nil {
		return Book{}, err
	}

	b := Book{
		ID:       f.ID,
		Title:    f.Title,
		Author:   f.Author,
		ISBN:     f.ISBN,
		Year:     f.Year,
		Tags:     ParseTags(f.Tags, opts.TagPolicy),
		Category: f.Category,
	}
	if opts.RatingEnabled {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.Rating), 64)
		if err != nil {
			return Book{}, &ValidationError{Fields: []FieldError{{Field: "rating", Message: "rating must be a number"}}}
		}
		b.Rating = &v
	}
	return b, nil
}

// ParseTags splits a comma-separated string into trimmed tokens, keeping
// input order. An empty input yields no tags.
func ParseTags(s string, policy TagPolicy) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" && policy == DropEmptyTags {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

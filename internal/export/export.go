// Package export writes the catalog to interchange files.
package export

import (
	"fmt"
	"io"
	"strings"

	"bookcatalog/internal/book"

	jsoniter "github.com/json-iterator/go"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatParquet Format = "parquet"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatParquet}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatParquet:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Record is the flat, column-friendly form of a book.
type Record struct {
	ID       string   `json:"id" yaml:"id" parquet:"id"`
	Title    string   `json:"title" yaml:"title" parquet:"title"`
	Author   string   `json:"author" yaml:"author" parquet:"author"`
	ISBN     string   `json:"isbn" yaml:"isbn" parquet:"isbn"`
	Year     string   `json:"year" yaml:"year" parquet:"year"`
	Tags     []string `json:"tags" yaml:"tags" parquet:"tags,list"`
	Category string   `json:"category" yaml:"category" parquet:"category"`
	Rating   *float64 `json:"rating,omitempty" yaml:"rating,omitempty" parquet:"rating,optional"`
}

func toRecords(books []book.Book) []Record {
	records := make([]Record, 0, len(books))
	for _, b := range books {
		tags := b.Tags
		if tags == nil {
			tags = []string{}
		}
		records = append(records, Record{
			ID:       b.ID,
			Title:    b.Title,
			Author:   b.Author,
			ISBN:     b.ISBN,
			Year:     b.Year,
			Tags:     tags,
			Category: b.Category,
			Rating:   b.Rating,
		})
	}
	return records
}

// Write encodes books to w in the given format, preserving order.
func Write(w io.Writer, format Format, books []book.Book) error {
	records := toRecords(books)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatParquet:
		pw := parquet.NewGenericWriter[Record](w)
		if _, err := pw.Write(records); err != nil {
			return fmt.Errorf("writing parquet rows: %w", err)
		}
		if err := pw.Close(); err != nil {
			return fmt.Errorf("closing parquet writer: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

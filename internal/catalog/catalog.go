// Package catalog keeps the book collection, its persisted blob and the
// rendered views in step. Every successful mutation is written through to the
// blob store and then redrawn on all attached renderers.
package catalog

import "bookcatalog/internal/book"

// DefaultBlobKey names the slot the collection is persisted under.
const DefaultBlobKey = "books"

// Region identifies one chart area on an output surface.
type Region string

const (
	RegionCategory Region = "category"
	RegionYear     Region = "year"
)

// Count is one bar of an aggregate chart.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Chart is a titled label->count series for a single region.
type Chart struct {
	Region Region  `json:"region"`
	Title  string  `json:"title"`
	Counts []Count `json:"counts"`
}

// Renderer draws the catalog onto an output surface. Drawing a chart into a
// region that already holds one must dispose of the old chart first.
type Renderer interface {
	RenderTable(books []book.Book) error
	RenderChart(chart Chart) error
}

// Charts derives both aggregate charts from the full collection.
func Charts(books []book.Book) []Chart {
	return []Chart{
		{Region: RegionCategory, Title: "Books per Category", Counts: AggregateByCategory(books)},
		{Region: RegionYear, Title: "Books per Publication Year", Counts: AggregateByYear(books)},
	}
}

package catalog

import (
	"testing"

	"bookcatalog/internal/book"

	"github.com/stretchr/testify/assert"
)

func rating(v float64) *float64 { return &v }

func sampleBooks() []book.Book {
	return []book.Book{
		{ID: "1", Title: "The Go Programming Language", Author: "Donovan", ISBN: "9780134190440", Year: "2015", Tags: []string{"go"}, Category: "Nonfiction", Rating: rating(4)},
		{ID: "2", Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Year: "1965", Tags: []string{"sci-fi"}, Category: "Fiction", Rating: rating(5)},
		{ID: "3", Title: "Emma", Author: "Jane Austen", ISBN: "9780141439587", Year: "1815", Tags: []string{}, Category: "Fiction", Rating: rating(4)},
		{ID: "4", Title: "Cosmos", Author: "Carl Sagan", ISBN: "9780345539434", Year: "1980", Tags: []string{}, Category: "Science"},
	}
}

func ids(books []book.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	books := sampleBooks()

	testCases := []struct {
		name  string
		query string
		want  []string
	}{
		{"lowercase matches title", "go", []string{"1"}},
		{"uppercase matches title", "GO", []string{"1"}},
		{"matches author", "austen", []string{"3"}},
		{"matches isbn", "0441", []string{"2"}},
		{"no match", "xyz", []string{}},
		{"empty returns all in order", "", []string{"1", "2", "3", "4"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Search(books, tc.query)))
		})
	}
}

func TestFilterByCategory(t *testing.T) {
	books := sampleBooks()

	assert.Equal(t, []string{"2", "3"}, ids(FilterByCategory(books, "Fiction")))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(FilterByCategory(books, AllCategories)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(FilterByCategory(books, "")))
	assert.Equal(t, []string{}, ids(FilterByCategory(books, "fiction")))
}

func TestSortByRating(t *testing.T) {
	books := sampleBooks()

	sorted := SortByRating(books)
	// 1 and 3 tie on 4 and keep input order; unrated 4 goes last
	assert.Equal(t, []string{"2", "1", "3", "4"}, ids(sorted))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(books), "input must not be reordered")
}

func TestAggregateByCategory(t *testing.T) {
	books := []book.Book{
		{Category: "Fiction"},
		{Category: "Fiction"},
		{Category: "Nonfiction"},
	}

	counts := AggregateByCategory(books)
	assert.Equal(t, []Count{{Label: "Fiction", Count: 2}, {Label: "Nonfiction", Count: 1}}, counts)
}

func TestAggregateByYear_FirstSeenOrder(t *testing.T) {
	books := []book.Book{{Year: "2001"}, {Year: "1999"}, {Year: "2001"}}

	assert.Equal(t, []Count{{Label: "2001", Count: 2}, {Label: "1999", Count: 1}}, AggregateByYear(books))
	assert.Empty(t, AggregateByYear(nil))
}

func TestQuery_Apply(t *testing.T) {
	books := sampleBooks()

	q := Query{Search: "a", Category: "Fiction", SortByRating: true}
	assert.Equal(t, []string{"2", "3"}, ids(q.Apply(books)))

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Query{}.Apply(books)))
}

func TestCharts(t *testing.T) {
	charts := Charts(sampleBooks())

	assert.Len(t, charts, 2)
	assert.Equal(t, RegionCategory, charts[0].Region)
	assert.Equal(t, "Books per Category", charts[0].Title)
	assert.Equal(t, RegionYear, charts[1].Region)
	assert.Equal(t, "Books per Publication Year", charts[1].Title)
	assert.Len(t, charts[1].Counts, 4)
}

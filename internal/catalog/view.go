package catalog

import (
	"cmp"
	"slices"
	"strings"

	"bookcatalog/internal/book"
)

// AllCategories is the category filter value that matches every book.
const AllCategories = "all"

// Query combines the table-side view parameters of the output surface.
type Query struct {
	Search       string
	Category     string
	SortByRating bool
}

// Apply runs search, then category filter, then the optional rating sort.
func (q Query) Apply(books []book.Book) []book.Book {
	out := Search(books, q.Search)
	out = FilterByCategory(out, q.Category)
	if q.SortByRating {
		out = SortByRating(out)
	}
	return out
}

// Search returns the books whose title, author or isbn contains query,
// ignoring case. An empty query returns every book in order.
func Search(books []book.Book, query string) []book.Book {
	if query == "" {
		return slices.Clone(books)
	}
	q := strings.ToLower(query)
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.ISBN), q) {
			out = append(out, b)
		}
	}
	return out
}

// FilterByCategory keeps exact category matches. "all" and "" keep everything.
func FilterByCategory(books []book.Book, category string) []book.Book {
	if category == "" || category == AllCategories {
		return slices.Clone(books)
	}
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// SortByRating orders by descending rating. The sort is stable and unrated
// books go last.
func SortByRating(books []book.Book) []book.Book {
	out := slices.Clone(books)
	slices.SortStableFunc(out, func(a, b book.Book) int {
		switch {
		case a.Rating == nil && b.Rating == nil:
			return 0
		case a.Rating == nil:
			return 1
		case b.Rating == nil:
			return -1
		}
		return cmp.Compare(*b.Rating, *a.Rating)
	})
	return out
}

// AggregateByCategory counts books per category in first-seen order.
func AggregateByCategory(books []book.Book) []Count {
	return aggregate(books, func(b book.Book) string { return b.Category })
}

// AggregateByYear counts books per year in first-seen order.
func AggregateByYear(books []book.Book) []Count {
	return aggregate(books, func(b book.Book) string { return b.Year })
}

func aggregate(books []book.Book, key func(book.Book) string) []Count {
	index := make(map[string]int)
	counts := make([]Count, 0)
	for _, b := range books {
		k := key(b)
		if i, ok := index[k]; ok {
			counts[i].Count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, Count{Label: k, Count: 1})
	}
	return counts
}

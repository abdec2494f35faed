package render

import (
	"html/template"
	"io"
	"slices"
	"strconv"
	"strings"

	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"
)

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"tags": func(tags []string) string { return strings.Join(tags, ", ") },
	"rating": func(r *float64) string {
		if r == nil {
			return ""
		}
		return strconv.FormatFloat(*r, 'f', -1, 64)
	},
	"coord": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
}).ParseFS(templateFS, "templates/page.html"))

// Page is the HTML output surface for one request. It holds the current
// table rows, one chart per region, and the state of the input form.
type Page struct {
	Form          book.Fields
	Alert         string
	Query         catalog.Query
	RatingEnabled bool

	rows   []book.Book
	charts map[catalog.Region]*ChartInstance
}

func NewPage(opts book.Options) *Page {
	return &Page{
		RatingEnabled: opts.RatingEnabled,
		rows:          []book.Book{},
		charts:        make(map[catalog.Region]*ChartInstance),
	}
}

func (p *Page) RenderTable(books []book.Book) error {
	p.rows = make([]book.Book, len(books))
	for i, b := range books {
		p.rows[i] = b.Clone()
	}
	return nil
}

// RenderChart replaces the chart in c.Region, destroying the previous one.
func (p *Page) RenderChart(c catalog.Chart) error {
	if old, ok := p.charts[c.Region]; ok {
		old.Destroy()
	}
	p.charts[c.Region] = newChartInstance(c)
	return nil
}

func (p *Page) Rows() []book.Book { return p.rows }

// Chart returns the live chart of a region, or nil.
func (p *Page) Chart(region catalog.Region) *ChartInstance { return p.charts[region] }

// Charts returns the live charts in display order.
func (p *Page) Charts() []*ChartInstance {
	out := make([]*ChartInstance, 0, 2)
	for _, region := range []catalog.Region{catalog.RegionCategory, catalog.RegionYear} {
		if c, ok := p.charts[region]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Editing reports whether the form is bound to an existing book.
func (p *Page) Editing() bool { return p.Form.ID != "" }

// Categories lists book.Categories followed by any others in use.
func (p *Page) Categories() []string {
	out := slices.Clone(book.Categories)
	if c, ok := p.charts[catalog.RegionCategory]; ok {
		for _, bar := range c.Bars {
			if !slices.Contains(out, bar.Label) {
				out = append(out, bar.Label)
			}
		}
	}
	for _, extra := range []string{p.Form.Category, p.Query.Category} {
		if extra != "" && extra != catalog.AllCategories && !slices.Contains(out, extra) {
			out = append(out, extra)
		}
	}
	return out
}

// SelectedCategory is the filter value, defaulting to all.
func (p *Page) SelectedCategory() string {
	if p.Query.Category == "" {
		return catalog.AllCategories
	}
	return p.Query.Category
}

// Render writes the complete HTML document.
func (p *Page) Render(w io.Writer) error {
	return pageTemplate.Execute(w, p)
}

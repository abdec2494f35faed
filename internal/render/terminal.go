package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const terminalBarWidth = 40

var (
	accent = lipgloss.Color("#4bc0c0")
	muted  = lipgloss.Color("#777777")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	barStyle    = lipgloss.NewStyle().Foreground(accent)
	labelStyle  = lipgloss.NewStyle().Foreground(muted)
)

// Terminal draws the catalog to a text stream for catalogctl. Every call
// writes immediately; the most recent chart per region is kept so a redraw
// can dispose of it.
type Terminal struct {
	out           io.Writer
	ratingEnabled bool
	charts        map[catalog.Region]*ChartInstance
}

func NewTerminal(out io.Writer, opts book.Options) *Terminal {
	return &Terminal{
		out:           out,
		ratingEnabled: opts.RatingEnabled,
		charts:        make(map[catalog.Region]*ChartInstance),
	}
}

func (t *Terminal) RenderTable(books []book.Book) error {
	headers := []string{"ID", "Title", "Author", "ISBN", "Year", "Category", "Tags"}
	if t.ratingEnabled {
		headers = append(headers, "Rating")
	}

	rows := make([][]string, 0, len(books))
	for _, b := range books {
		row := []string{b.ID, b.Title, b.Author, b.ISBN, b.Year, b.Category, strings.Join(b.Tags, ", ")}
		if t.ratingEnabled {
			r := ""
			if b.Rating != nil {
				r = strconv.FormatFloat(*b.Rating, 'f', -1, 64)
			}
			row = append(row, r)
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(muted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	if _, err := fmt.Fprintln(t.out, tbl.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(t.out, labelStyle.Render(fmt.Sprintf("%d book(s)", len(books))))
	return err
}

// RenderChart replaces the chart in c.Region and prints it as horizontal bars.
func (t *Terminal) RenderChart(c catalog.Chart) error {
	if old, ok := t.charts[c.Region]; ok {
		old.Destroy()
	}
	inst := newChartInstance(c)
	t.charts[c.Region] = inst

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(inst.Title))
	sb.WriteString("\n")
	if inst.Empty() {
		sb.WriteString(labelStyle.Render("  no data"))
		sb.WriteString("\n")
		_, err := io.WriteString(t.out, sb.String())
		return err
	}

	labelWidth := 0
	for _, bar := range inst.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
	}
	for _, bar := range inst.Bars {
		n := max(1, bar.Count*terminalBarWidth/inst.Max)
		label := labelStyle.Width(labelWidth).Render(bar.Label)
		fmt.Fprintf(&sb, "  %s %s %d\n", label, barStyle.Render(strings.Repeat("█", n)), bar.Count)
	}
	_, err := io.WriteString(t.out, sb.String())
	return err
}

// Chart returns the live chart of a region, or nil.
func (t *Terminal) Chart(region catalog.Region) *ChartInstance { return t.charts[region] }

package cli

import (
	"fmt"

	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"

	"github.com/spf13/cobra"
)

// bindFieldFlags registers one flag per input field.
func bindFieldFlags(cmd *cobra.Command, f *book.Fields) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Book title")
	cmd.Flags().StringVar(&f.Author, "author", "", "Author")
	cmd.Flags().StringVar(&f.ISBN, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&f.Year, "year", "", "Publication year")
	cmd.Flags().StringVar(&f.Tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&f.Category, "category", "", "Category")
	cmd.Flags().StringVar(&f.Rating, "rating", "", "Rating (when enabled)")
}

func newAddCmd(a *app) *cobra.Command {
	var f book.Fields
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Example: `  catalogctl add --title Dune --author "Frank Herbert" --isbn 9780441013593 \
    --year 1965 --category Fiction --tags "sci-fi, classic" --rating 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.manager.Attach(a.term)
			b, err := a.manager.Add(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "added %s\n", b.ID)
			return nil
		},
	}
	bindFieldFlags(cmd, &f)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var f book.Fields
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a book; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, ok := a.manager.BeginEdit(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", book.ErrNotFound, args[0])
			}
			merged := mergeChanged(cmd, current)
			a.manager.Attach(a.term)
			if _, err := a.manager.Update(cmd.Context(), args[0], merged); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "updated %s\n", args[0])
			return nil
		},
	}
	bindFieldFlags(cmd, &f)
	return cmd
}

// mergeChanged overlays the explicitly set flags onto current.
func mergeChanged(cmd *cobra.Command, current book.Fields) book.Fields {
	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"title":    &current.Title,
		"author":   &current.Author,
		"isbn":     &current.ISBN,
		"year":     &current.Year,
		"tags":     &current.Tags,
		"category": &current.Category,
		"rating":   &current.Rating,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	return current
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"delete"},
		Short:   "Remove books; unknown ids are ignored",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.manager.Attach(a.term)
			return a.manager.Remove(cmd.Context(), args...)
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.manager.Get(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[0])
			}
			return a.term.RenderTable([]book.Book{b})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var q catalog.Query
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the table, optionally searched, filtered and sorted",
		Long: `Without any query flag list prints the whole catalog with both charts.
With --q, --category or --sort-rating only the matching table is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.manager.Attach(a.term)
			if q.Search == "" && !q.SortByRating && (q.Category == "" || q.Category == catalog.AllCategories) {
				a.manager.Refresh()
				return nil
			}
			a.manager.Show(a.manager.Find(q))
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "q", "", "Case-insensitive search over title, author and ISBN")
	cmd.Flags().StringVar(&q.Category, "category", catalog.AllCategories, "Only this category")
	cmd.Flags().BoolVar(&q.SortByRating, "sort-rating", false, "Highest rated first")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print books per category and per publication year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range catalog.Charts(a.manager.All()) {
				if err := a.term.RenderChart(c); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

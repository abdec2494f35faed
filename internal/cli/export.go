package cli

import (
	"fmt"
	"os"
	"strings"

	"bookcatalog/internal/export"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole catalog to a file",
		Example: `  catalogctl export --format parquet --out books.parquet
  catalogctl export --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			books := a.manager.All()

			if out == "" || out == "-" {
				return export.Write(a.out, f, books)
			}
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := export.Write(file, f, books); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "exported %d book(s) to %s\n", len(books), out)
			return nil
		},
	}

	names := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		names = append(names, string(f))
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "Output format: "+strings.Join(names, ", "))
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

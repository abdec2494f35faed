// Package cli implements catalogctl, a terminal front end to the catalog.
package cli

import (
	"context"
	"fmt"
	"io"

	"bookcatalog/internal/blob"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/logging"
	"bookcatalog/internal/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand for one invocation.
type app struct {
	blobs   blob.Store
	owned   bool
	logger  *zap.Logger
	manager *catalog.Manager
	term    *render.Terminal
	out     io.Writer
}

// Option customizes the root command, mostly for tests.
type Option func(*app)

// WithBlobStore uses store instead of the configured backend. The caller
// keeps ownership and closes it.
func WithBlobStore(store blob.Store) Option {
	return func(a *app) { a.blobs = store }
}

// WithLogger replaces the configured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *app) { a.logger = logger }
}

func NewRootCmd(options ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range options {
		opt(a)
	}

	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Manage the personal book catalog from the terminal",
		Long: `catalogctl adds, edits and removes books in the same catalog the web
page serves, and prints the table and the per-category and per-year charts.

Storage is selected with the same settings as the server (CATALOG_BACKEND,
CATALOG_DATA_DIR, DB_DSN, ...).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context(), cmd.OutOrStdout())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	cmd.AddCommand(
		newAddCmd(a),
		newEditCmd(a),
		newRmCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
	)
	return cmd
}

func (a *app) open(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logger == nil {
		// keep stdout for the catalog itself
		a.logger, err = logging.New("warn", "console")
		if err != nil {
			return err
		}
	}
	if a.blobs == nil {
		a.blobs, err = blob.Open(ctx, cfg.Catalog.BlobOptions())
		if err != nil {
			return fmt.Errorf("opening %s store: %w", cfg.Catalog.Backend, err)
		}
		a.owned = true
	}

	opts := cfg.Catalog.BookOptions()
	a.out = out
	a.term = render.NewTerminal(out, opts)
	a.manager = catalog.NewManager(ctx, a.blobs,
		catalog.WithBlobKey(cfg.Catalog.BlobKey),
		catalog.WithRating(opts.RatingEnabled),
		catalog.WithTagPolicy(opts.TagPolicy),
		catalog.WithLogger(a.logger),
	)
	return nil
}

func (a *app) close() error {
	_ = a.logger.Sync()
	if a.owned {
		return a.blobs.Close()
	}
	return nil
}

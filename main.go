package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bestseller-dashboard/config"
	"bestseller-dashboard/models"
	"bestseller-dashboard/server"
	"bestseller-dashboard/services"
	"bestseller-dashboard/snapshot"
	"bestseller-dashboard/storage"
	"bestseller-dashboard/utils"
)

const (
	watchDebounce   = 250 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

func main() {
	mode := flag.String("mode", "serve", "serve | report | export | snapshot")
	years := flag.String("year", "", "comma-separated years (default: all)")
	genres := flag.String("genre", "", "comma-separated genres (default: all)")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Bestseller Dashboard starting (%s) ===", *mode)
	logger.Info("Dataset: %s | separator: %q | encoding: %s", cfg.DatasetPath, cfg.Separator(), cfg.DatasetEncoding)

	loader := storage.NewLoader(cfg.DatasetPath, cfg.Separator(), cfg.DatasetEncoding, logger)
	table, err := loader.Load()
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d books (%d years, %d genres)", table.Len(), len(table.Years()), len(table.Genres()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dashboard := services.NewDashboard(logger)

	switch *mode {
	case "serve":
		err = serve(ctx, cfg, loader, dashboard, logger)
	case "report", "export":
		var sel models.Selection
		sel, err = cliSelection(table, *years, *genres)
		if err != nil {
			break
		}
		if *mode == "report" {
			err = report(ctx, cfg, table, sel, dashboard, logger)
		} else {
			err = export(ctx, cfg, table, sel, logger)
		}
	case "snapshot":
		err = capture(ctx, cfg, loader, dashboard, logger)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}

	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	logger.Info("=== Done ===")
}

// cliSelection applies the same absent/empty rules as the HTTP query string:
// a flag that was not given selects everything.
func cliSelection(table models.BookTable, years, genres string) (models.Selection, error) {
	q := url.Values{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "year":
			q.Set("year", years)
		case "genre":
			q.Set("genre", genres)
		}
	})
	return server.ParseSelection(q, table)
}

func serve(ctx context.Context, cfg *config.Config, loader *storage.Loader, dashboard *services.Dashboard, logger *utils.Logger) error {
	if cfg.WatchDataset {
		watcher, err := storage.NewWatcher(loader.Path(), loader, watchDebounce, logger)
		if err != nil {
			logger.Warn("Dataset watcher disabled: %v", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(loader, dashboard, logger, server.WithCSVSeparator(cfg.Separator())),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Dashboard listening on %s", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// report prints the dashboard to the terminal. With Postgres enabled the table
// is stored first and the report runs over what the database returns.
func report(ctx context.Context, cfg *config.Config, table models.BookTable, sel models.Selection, dashboard *services.Dashboard, logger *utils.Logger) error {
	if cfg.PostgresEnabled {
		pgWriter, err := openPostgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer pgWriter.Close()

		if err := pgWriter.Write(ctx, table.Books); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else if dbTable, err := pgWriter.FetchAll(ctx); err != nil {
			logger.Error("Failed to fetch books from DB for the report: %v", err)
		} else {
			logger.Info("Report runs over %d books stored in PostgreSQL", dbTable.Len())
			table = dbTable
		}
	}

	view := dashboard.Build(table, sel)
	services.NewReportPrinter(os.Stdout, os.Getenv("NO_COLOR") == "").Print(view)
	return nil
}

// export writes the filtered rows to CSV and, if enabled, to PostgreSQL.
func export(ctx context.Context, cfg *config.Config, table models.BookTable, sel models.Selection, logger *utils.Logger) error {
	if warn := services.CheckSelection(sel); warn != nil {
		return errors.New(warn.Message)
	}
	filtered := services.FilterBooks(table, sel)

	writers := []storage.BookWriter{}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVExportPath, cfg.Separator())
	if err != nil {
		return err
	}
	writers = append(writers, csvWriter)

	if cfg.PostgresEnabled {
		pgWriter, err := openPostgres(ctx, cfg, logger)
		if err != nil {
			_ = csvWriter.Close()
			return err
		}
		writers = append(writers, pgWriter)
	}

	var errs []error
	for _, w := range writers {
		if err := w.Write(ctx, filtered.Books); err != nil {
			errs = append(errs, err)
		}
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	logger.Info("Exported %d books to %s", filtered.Len(), cfg.CSVExportPath)
	return nil
}

// capture serves the dashboard on a loopback port just long enough to
// screenshot it.
func capture(ctx context.Context, cfg *config.Config, loader *storage.Loader, dashboard *services.Dashboard, logger *utils.Logger) error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("snapshot: listen: %w", err)
	}

	srv := &http.Server{
		Handler:           server.New(loader, dashboard, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Snapshot server stopped: %v", err)
		}
	}()
	defer srv.Close()

	target := "http://" + ln.Addr().String() + "/"
	return snapshot.New(cfg.ChromeBin, cfg.MaxRetries, logger).Capture(ctx, target, cfg.SnapshotPath)
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*storage.PostgresWriter, error) {
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   time.Second,
		Logger:      logger,
	}
	pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DSN(), retry)
	if err != nil {
		logger.Error("Make sure PostgreSQL is reachable at %s:%s", cfg.PostgresHost, cfg.PostgresPort)
		return nil, err
	}
	return pgWriter, nil
}

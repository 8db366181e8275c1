package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/aulas/internal/adapter"
	"github.com/mmcdole/aulas/internal/adapter/source/kmedia"
	"github.com/mmcdole/aulas/internal/domain"
	"github.com/mmcdole/aulas/internal/render"
	"github.com/mmcdole/aulas/internal/service"
	"github.com/mmcdole/aulas/internal/store"
	"github.com/mmcdole/aulas/internal/tui"
	"github.com/mmcdole/aulas/internal/web"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		printHTML   bool
		serveAddr   string
		clearCache  bool
		initConfig  bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&printHTML, "html", false, "print the lesson grid as HTML and exit")
	flag.StringVar(&serveAddr, "serve", "", "serve the lesson grid over HTTP on `addr` (e.g. :8080)")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove cached thumbnails and exit")
	flag.BoolVar(&initConfig, "init-config", false, "write the current configuration to the config file and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("aulas %s\n", Version)
		return
	}

	if err := run(printHTML, serveAddr, clearCache, initConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(printHTML bool, serveAddr string, clearCache, initConfig bool) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if initConfig {
		if err := adapter.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Println("✓ Configuration saved")
		return nil
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	if clearCache {
		return runClearCache(cfg, logger)
	}

	logger.Info("starting aulas", "version", Version, "api", cfg.API.BaseURL, "language", cfg.API.Language)

	// Create adapters
	client := kmedia.NewClient(kmedia.Options{
		BaseURL:        cfg.API.BaseURL,
		ImageURL:       cfg.API.ImageURL,
		MediaURL:       cfg.API.MediaURL,
		Language:       cfg.API.Language,
		PageSize:       cfg.API.PageSize,
		Timeout:        cfg.API.Timeout,
		ThumbnailWidth: cfg.API.ThumbnailWidth,
	}, logger)
	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	// Create services
	catalogSvc := service.NewCatalogService(client, cfg.API.Language, logger)
	playbackSvc := service.NewPlaybackService(client, launcher, cfg.API.Language, logger)

	switch {
	case printHTML:
		return runHTML(catalogSvc)
	case serveAddr != "":
		return runServer(catalogSvc, playbackSvc, cfg, serveAddr, logger)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use -html or -serve")
	}

	var thumbStore domain.ThumbnailStore
	cache, err := store.NewThumbnailStore(cfg.Cache.Dir, cfg.API.BaseURL)
	if err != nil {
		// Memory-only cache when the disk cache is locked or unwritable
		logger.Warn("failed to open thumbnail cache", "error", err)
		cache, _ = store.NewThumbnailStore("", cfg.API.BaseURL)
	}
	if cache != nil {
		thumbStore = cache
		defer cache.Close()
	}
	thumbnailSvc := service.NewThumbnailService(client, thumbStore, logger)

	// Create TUI model
	model := tui.NewModel(catalogSvc, playbackSvc, thumbnailSvc, cfg, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runClearCache empties the thumbnail cache of the configured API
func runClearCache(cfg *adapter.Config, logger *slog.Logger) error {
	cache, err := store.NewThumbnailStore(cfg.Cache.Dir, cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to open thumbnail cache: %w", err)
	}
	defer cache.Close()

	n, err := service.NewThumbnailService(nil, cache, logger).ClearCache()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Removed %d cached thumbnails\n", n)
	return nil
}

// runHTML prints the grid markup for the loaded catalog. A failed load still
// prints the (empty) grid and reports the error.
func runHTML(catalogSvc *service.CatalogService) error {
	result, loadErr := catalogSvc.Load(context.Background())
	out, err := render.Render(result.Grouped)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	fmt.Print(out)
	return loadErr
}

// runServer loads the catalog once and serves it until interrupted
func runServer(catalogSvc *service.CatalogService, playbackSvc *service.PlaybackService, cfg *adapter.Config, addr string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, loadErr := catalogSvc.Load(ctx)
	if loadErr != nil {
		logger.Error("catalog load failed", "error", loadErr)
	}

	handler := web.NewServer(result.Grouped, loadErr, playbackSvc, web.Options{
		Lang:    cfg.API.Language,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	fmt.Printf("Serving on %s\n", addr)
	return web.ListenAndServe(ctx, addr, handler, logger)
}

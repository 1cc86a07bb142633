package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/KaparthyReddy/ai-design-studio/internal/previews"
	"github.com/KaparthyReddy/ai-design-studio/internal/repositories"
	"github.com/KaparthyReddy/ai-design-studio/internal/services"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/KaparthyReddy/ai-design-studio/internal/tasks"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	gateway := services.NewStudioService(services.StudioOpts{
		BaseURL:         config.API.BaseURL,
		Logger:          logger,
		RequestTimeout:  config.RequestTimeout(),
		TransferTimeout: config.TransferTimeout(),
	})
	apiService := services.NewAPIService(config.API.BaseURL, nil)

	var previewStore tasks.PreviewStore
	if store, err := previews.NewFileStore(config.Previews.Dir); err == nil {
		previewStore = store
	} else {
		logger.Warn("preview store unavailable", "err", err)
	}

	var galleryCache tasks.GalleryCache
	var styleCache *repositories.StyleRepository
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		galleryCache = repositories.NewGalleryRepository(db)
		styleCache = repositories.NewStyleRepository(db)
	} else {
		logger.Warn("cache database unavailable, caching disabled", "err", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:       config,
		Gateway:      gateway,
		API:          apiService,
		Previews:     previewStore,
		GalleryCache: galleryCache,
		StyleCache:   styleCache,
		Logger:       logger,
	})

	app := &cli.Command{
		Name:     "studio",
		Usage:    "Client for the neural style transfer backend",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/damacus/media-shelf/internal/config"
	"github.com/damacus/media-shelf/internal/handlers"
	customMiddleware "github.com/damacus/media-shelf/internal/middleware"
	"github.com/damacus/media-shelf/internal/renderer"
	"github.com/damacus/media-shelf/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log.Level)

	slog.Info("media-shelf starting",
		"addr", cfg.Server.Addr,
		"endpoint", cfg.Minio.Endpoint,
		"bucket", cfg.Minio.Bucket,
	)

	e := newServer(cfg, &services.RealMinioFactory{})

	if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newServer(cfg *config.Config, minioFactory services.MinioClientFactory) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Services
	creds := services.Credentials{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Secure:    cfg.Minio.Secure,
	}
	library := services.NewMediaLibrary(minioFactory, creds, cfg.Minio.Bucket, cfg.Library.PageSize)
	libraryHandler := handlers.NewLibraryHandler(library, cfg.Library.Prefix)
	formatHandler := handlers.NewFormatHandler()

	// Middleware
	e.Use(customMiddleware.RequestID())
	e.Use(customMiddleware.RequestLogger(slog.Default()))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders("/export"))

	// Template Renderer
	e.Renderer = renderer.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Library
	e.GET("/", libraryHandler.BrowseLibrary)
	e.GET("/media/info", libraryHandler.GetMediaInfo)
	e.GET("/api/storage/widget", libraryHandler.GetStorageWidget)
	e.GET("/export", libraryHandler.ExportCSV)

	// Formatting API
	e.GET("/api/format", formatHandler.Format)

	return e
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

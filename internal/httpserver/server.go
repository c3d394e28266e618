// Package httpserver assembles and runs the registry HTTP service.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mquezada/katutubo/internal/api"
	"github.com/mquezada/katutubo/internal/conf"
	"github.com/mquezada/katutubo/internal/datastore"
	"github.com/mquezada/katutubo/internal/logging"
	"github.com/mquezada/katutubo/internal/media"
	"github.com/mquezada/katutubo/internal/observability"
	"github.com/mquezada/katutubo/internal/security"
)

const shutdownTimeout = 10 * time.Second

// Run starts the service and blocks until SIGINT/SIGTERM.
func Run(settings *conf.Settings) error {
	logger := slog.Default().With("service", "httpserver")
	if lc := settings.Main.Log; lc.Enabled {
		var closeLog func() error
		logger, closeLog = logging.ForService("httpserver", lc.Path, lc.MaxSize, lc.MaxAge, slog.LevelInfo)
		defer closeLog()
	}

	ds, err := datastore.New(settings)
	if err != nil {
		return err
	}
	if err := ds.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer func() {
		if err := ds.Close(); err != nil {
			logger.Error("closing datastore", "error", err)
		}
	}()

	authService := security.NewService(ds, time.Duration(settings.Security.SessionTTLMinutes)*time.Minute)
	if err := authService.SeedAdmin(settings.Security.SeedAdminEmail, settings.Security.SeedAdminPassword); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}

	photos, err := media.NewStore(settings.Media.Path, settings.Media.PublicPath, settings.Media.MaxSizeMB)
	if err != nil {
		return fmt.Errorf("initializing media store: %w", err)
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api.New(e, ds, settings, authService, photos, metrics)

	addr := settings.WebServer.Host + ":" + settings.WebServer.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

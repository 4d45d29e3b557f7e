// Package server wires the datastore, classifiers and API controller into a
// runnable HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/econsult/commentnet-go/internal/analysis"
	"github.com/econsult/commentnet-go/internal/api"
	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/errors"
	"github.com/econsult/commentnet-go/internal/export"
	"github.com/econsult/commentnet-go/internal/logging"
	"github.com/econsult/commentnet-go/internal/observability"
	"github.com/econsult/commentnet-go/internal/sentiment"
)

// Server owns the HTTP listener and every service behind it.
type Server struct {
	Echo     *echo.Echo
	Settings *conf.Settings
	DS       datastore.Interface

	controller *api.Controller
	model      *sentiment.InferenceClient
	logger     *slog.Logger
	logClose   func() error
}

// New builds a fully wired server. The datastore is opened here so a bad
// database path fails fast instead of on the first request.
func New(settings *conf.Settings) (*Server, error) {
	ds := datastore.New(settings)
	if ds == nil {
		return nil, errors.Newf("no database output is enabled").
			Component("server").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if err := ds.Open(); err != nil {
		return nil, err
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		return nil, err
	}

	model := sentiment.NewInferenceClient(sentiment.InferenceConfig{
		Endpoint: settings.Model.Endpoint,
		APIKey:   settings.Model.APIKey,
		Timeout:  time.Duration(settings.Model.Timeout) * time.Second,
	}, metrics)
	classifier := sentiment.NewClassifier(model)

	analysisService := analysis.NewService(ds, classifier, metrics)
	exporter := export.NewService(ds, settings, metrics)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	if settings.WebServer.Debug {
		e.Use(middleware.Logger())
	}

	s := &Server{
		Echo:     e,
		Settings: settings,
		DS:       ds,
		model:    model,
		logger:   logging.ForService("server"),
	}
	if settings.Main.Log.Enabled {
		level := slog.LevelInfo
		if settings.Debug {
			level = logging.LevelTrace
		}
		fileLogger, closeFn, err := logging.NewFileLogger(
			settings.Main.Log.Path, "server", level, logging.FileLoggerConfig{
				MaxSizeMB:  settings.Main.Log.MaxSize,
				MaxBackups: settings.Main.Log.MaxBackups,
				MaxAgeDays: settings.Main.Log.MaxAge,
			})
		if err != nil {
			s.logger.Warn("file logging disabled", "path", settings.Main.Log.Path, "error", err)
		} else {
			s.logger = fileLogger
			s.logClose = closeFn
		}
	}
	s.controller = api.New(e, ds, settings, analysisService, exporter, classifier, metrics)
	return s, nil
}

// Start runs the HTTP listener until the context is cancelled, then shuts
// down gracefully and closes the datastore.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", s.Settings.WebServer.Port)
	s.logger.Info("starting web server", "address", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.Echo.Start(addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		s.closeDatastore()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.Echo.Shutdown(shutdownCtx)
	s.model.Close()
	s.closeDatastore()
	if s.logClose != nil {
		if closeErr := s.logClose(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

func (s *Server) closeDatastore() {
	if err := s.DS.Close(); err != nil {
		s.logger.Error("failed to close datastore", "error", err)
	}
}

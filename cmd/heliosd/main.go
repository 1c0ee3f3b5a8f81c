package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"helios/internal/api"
	"helios/internal/cms"
	"helios/internal/config"
	"helios/internal/slack"
	"helios/internal/state"
	"helios/internal/stream"
)

var cli struct {
	Config string `help:"Path to configuration file." default:"/etc/helios/config.yaml"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("heliosd"),
		kong.Description("Helios GPU cloud API server"),
	)

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetLevel(logrus.InfoLevel)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339})
	}
	logrus.SetFormatter(logger.Formatter)
	logrus.SetLevel(logger.GetLevel())

	appState := state.New()

	// Initialize Slack notifier
	if cfg.Slack.Enabled {
		appState.Notifier = slack.NewNotifier(cfg.Slack.WebhookURL)
		logger.Info("Slack notifier initialized")
	}

	// Initialize CMS client
	if cfg.CMS.Enabled {
		client := cms.New(cfg.CMSBaseURL(), cfg.CMS.Dataset, cfg.CMS.APIVersion)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.HealthCheck(ctx); err != nil {
			logger.Warnf("CMS not reachable: %v", err)
		}
		cancel()
		appState.CMS = client
		logger.Info("CMS client initialized")
	}

	// Initialize NATS stream
	if cfg.NATS.Enabled {
		events, err := stream.NewNATS(cfg.NATS.URL)
		if err != nil {
			logger.Warnf("Failed to initialize NATS stream: %v", err)
		} else {
			appState.Stream = events
			logger.Info("NATS stream initialized")
		}
	}

	router := api.SetupRoutes(appState)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("Starting Helios API server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warnf("Error shutting down server: %v", err)
	}

	// Close application state (streams, etc.)
	if err := appState.Close(); err != nil {
		logger.Warnf("Error closing application state: %v", err)
	}

	logger.Info("Server exited gracefully")
}

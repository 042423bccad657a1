package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/devops-poll/cliparse"
	"github.com/danielhkuo/devops-poll/events"
	"github.com/danielhkuo/devops-poll/live"
	"github.com/danielhkuo/devops-poll/router"
	"github.com/danielhkuo/devops-poll/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the tally store
	s, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("store setup failed", "error", err, "backend", cfg.StoreType)
		os.Exit(1)
	}
	defer s.Close()

	// A bad tally is reported at startup but does not stop the server
	if t, err := s.GetAll(ctx); err != nil {
		slog.Warn("tally not readable yet", "error", err)
	} else {
		slog.Info("Tally loaded",
			"options", t.Len(),
			"votes", humanize.Comma(int64(t.Total())),
		)
	}

	hub := live.NewHub()
	go hub.Run(ctx)

	publisher := newPublisher(ctx, cfg)
	defer publisher.Close()

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(s, publisher, hub, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "backend", cfg.StoreType)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// newPublisher connects to RabbitMQ when configured. Vote events are
// optional, so a broker that cannot be reached only disables them.
func newPublisher(ctx context.Context, cfg cliparse.Config) events.Publisher {
	if cfg.RabbitMQURL == "" {
		slog.Info("vote events disabled")
		return events.NopPublisher{}
	}

	conn, err := events.Connect(ctx, cfg.RabbitMQURL)
	if err != nil {
		slog.Error("RabbitMQ unavailable, vote events disabled", "error", err)
		return events.NopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(conn, cfg.RabbitMQQueue)
	if err != nil {
		conn.Close()
		slog.Error("RabbitMQ queue setup failed, vote events disabled", "error", err)
		return events.NopPublisher{}
	}

	slog.Info("publishing vote events", "queue", cfg.RabbitMQQueue)
	return publisher
}

func setupLogger(cfg cliparse.Config) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var logger *slog.Logger
	if cfg.LogFormat == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	slog.SetDefault(logger)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

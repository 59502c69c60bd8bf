package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hegerb/rohlik-admin/internal/config"
	"github.com/hegerb/rohlik-admin/internal/session"
	"github.com/hegerb/rohlik-admin/internal/shop"
	"github.com/hegerb/rohlik-admin/internal/telemetry"
	"github.com/hegerb/rohlik-admin/internal/web"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
)

const serviceVersion = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	ctx := context.Background()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	manager, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := manager.Get()

	if cfg.Log.Format == "text" {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	level.Set(cfg.Log.SlogLevel())

	// The log level follows configuration reloads; everything else is
	// fixed at startup.
	manager.Subscribe(func(c *config.Config) {
		level.Set(c.Log.SlogLevel())
		logger.Info("configuration reloaded", "log_level", c.Log.Level)
	})
	if *configPath != "" {
		manager.Watch()
	}

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(cfg.Telemetry.ServiceName, serviceVersion)
	if err != nil {
		logger.Error("failed to initialize meter provider", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := otelruntime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	if cfg.Telemetry.Enable {
		shutdownTracer, err := telemetry.InitTracerProvider(ctx, cfg.Telemetry.ServiceName, serviceVersion, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			logger.Error("failed to initialize tracer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownTracer(ctx) }()
	}

	httpClient := &http.Client{
		Timeout:   cfg.Shop.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	client, err := shop.NewClient(cfg.Shop.BaseURL, httpClient, logger)
	if err != nil {
		logger.Error("failed to create shop client", "error", err)
		os.Exit(1)
	}

	sessions := session.NewStore(cfg.Session.CookieName, cfg.Session.MaxAge, cfg.Session.Secure)

	handler, err := web.NewHandler(client, sessions, logger)
	if err != nil {
		logger.Error("failed to create web handler", "error", err)
		os.Exit(1)
	}

	mux := handler.Routes(metricsHandler)

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: otelhttp.NewHandler(web.RequestLogger(logger, mux), "admin",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting admin console", "addr", cfg.Server.Addr, "shop_url", cfg.Shop.BaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

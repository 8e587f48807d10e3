package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/rs/cors"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkglog"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkguid"
)

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path,
		pkgconfig.WithDotEnv(".env"),
		pkgconfig.WithDefaults(map[string]any{
			"tz":                               "UTC",
			"log.level":                        "info",
			"server.address.http":              ":8080",
			"server.cors.allowed_origins":      "*",
			"modules.dashboard.enabled":        true,
			"dashboard.title":                  "Sheetboard",
			"dashboard.session.cookie":         "sheetboard_session",
			"dashboard.session.ttl":            "30m",
			"dashboard.session.sweep_interval": "1m",
			"dashboard.upload.max_bytes":       32 << 20,
			"dashboard.upload.max_files":       20,
			"dashboard.decode.workers":         4,
			"dashboard.events.workers":         2,
		}),
	)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	if os.Getenv("LOG_LEVEL") == "" {
		pkglog.InitLogging(pkglog.Options{
			Service: serviceName,
			Level:   cfg.GetString("log.level"),
		})
	}

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()
	a.metrics = pkgmetrics.New(serviceName)

	node, err := pkguid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = node
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid, pkgrouter.WithObserver(a.metrics))
	a.router.Handle(http.MethodGet, "/metrics", a.metrics.Handler())

	corsHandler := cors.New(corsOptions(a.config.GetArray("server.cors.allowed_origins")))

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// corsOptions allows credentialed requests only from listed origins. A
// wildcard, or no origin at all, serves any origin without cookies.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		return opts
	}

	opts.AllowedOrigins = origins
	opts.AllowCredentials = true
	return opts
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}

package app

import (
	"context"
	"net/http"
	"os"

	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkglog"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkguid"
)

const serviceName = "sheetboard"

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager
	metrics   *pkgmetrics.Metrics

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging(pkglog.Options{
		Service: serviceName,
		Level:   os.Getenv("LOG_LEVEL"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/event"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/inbound"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/store"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/usecase"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgsession"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
	BatchID   pkguid.NumberID
	Metrics   *pkgmetrics.Metrics
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	if dep.BatchID == nil {
		node, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, err
		}
		dep.BatchID = node
	}

	ttl := dep.Config.GetDuration("dashboard.session.ttl")
	storage := store.NewInMemoryStore(ttl)

	var recorder event.FileRecorder
	if dep.Metrics != nil {
		recorder = dep.Metrics
	}

	bus := event.NewBus(512)
	consumer := event.NewUploadConsumer(bus, event.MetricsHandler{Recorder: recorder}, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("dashboard.events.workers")),
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	uc := usecase.New(usecase.Dependency{
		Store:    storage,
		Events:   bus,
		ID:       dep.ID,
		BatchID:  dep.BatchID,
		Workers:  int(dep.Config.GetInt("dashboard.decode.workers")),
		MaxFiles: int(dep.Config.GetInt("dashboard.upload.max_files")),
	})

	sessions := pkgsession.NewManager(pkgsession.Options{
		Name:   dep.Config.GetString("dashboard.session.cookie"),
		Secret: dep.Config.GetBinary("dashboard.session.secret"),
		MaxAge: int(ttl.Seconds()),
		Secure: dep.Config.GetBool("dashboard.session.secure"),
	}, dep.ID)

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Options{
		Title:    dep.Config.GetString("dashboard.title"),
		MaxBytes: dep.Config.GetInt("dashboard.upload.max_bytes"),
		Session:  sessions.Middleware,
	})

	dep.Goroutine.Every(dep.Context, "session-janitor", dep.Config.GetDuration("dashboard.session.sweep_interval"), func(ctx context.Context) error {
		if removed := storage.Sweep(time.Now()); removed > 0 {
			slog.InfoContext(ctx, "expired idle sessions", "removed", removed)
		}
		if dep.Metrics != nil {
			dep.Metrics.SetActiveSessions(storage.Len())
		}
		return nil
	})

	return consumer.Stop, nil
}

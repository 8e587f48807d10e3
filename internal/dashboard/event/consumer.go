package event

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/usecase"
)

type Handler interface {
	Handle(ctx context.Context, event entity.UploadEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// UploadConsumer drains the bus with a fixed worker pool, retrying failed
// handlers with exponential backoff and dropping duplicate event ids.
type UploadConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewUploadConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *UploadConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &UploadConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *UploadConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

func (c *UploadConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *UploadConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *UploadConsumer) processEvent(event entity.UploadEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if _, loaded := c.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate upload event", "event_id", event.EventID, "batch_id", event.Report.BatchID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to handle upload event after retries", "event_id", event.EventID, "batch_id", event.Report.BatchID, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

// FileRecorder receives per-file and per-batch outcomes.
type FileRecorder interface {
	FileProcessed(format, outcome string)
	DatasetCombined(rows int)
}

// MetricsHandler turns upload events into metrics.
type MetricsHandler struct {
	Recorder FileRecorder
}

func (h MetricsHandler) Handle(ctx context.Context, event entity.UploadEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}
	if h.Recorder == nil {
		return nil
	}

	for _, f := range event.Report.Succeeded {
		h.Recorder.FileProcessed(string(f.Format), "ok")
	}
	for _, f := range event.Report.Failed {
		h.Recorder.FileProcessed(string(usecase.DetectFormat(f.Filename)), strings.ToLower(string(f.Kind)))
	}
	if len(event.Report.Succeeded) > 0 {
		h.Recorder.DatasetCombined(event.Rows)
	}

	slog.InfoContext(ctx, "recorded upload batch",
		"event_id", event.EventID,
		"batch_id", event.Report.BatchID,
		"succeeded", len(event.Report.Succeeded),
		"failed", len(event.Report.Failed),
	)
	return nil
}

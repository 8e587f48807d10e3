package inbound

import (
	"context"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/usecase"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgrouter"
)

type uc interface {
	Upload(ctx context.Context, sessionID string, files []entity.UploadedFile) (usecase.UploadResult, error)
	ChangeFilter(ctx context.Context, sessionID string, in usecase.FilterInput) (usecase.TableResult, error)
	SubmitFilter(ctx context.Context, sessionID string, in usecase.FilterInput) (usecase.TableResult, error)
	Submit(ctx context.Context, sessionID string) (usecase.TableResult, error)
	SelectTab(ctx context.Context, sessionID, tabID string) (usecase.TabResult, error)
	Clear(ctx context.Context, sessionID string) error
	State(ctx context.Context, sessionID string) (entity.SessionState, error)
	Table(ctx context.Context, sessionID string) (usecase.TableResult, error)
	Controls(ctx context.Context, sessionID string) (usecase.ControlsResult, error)
	Analysis(ctx context.Context, sessionID string) (entity.Analysis, error)
	Dataset(ctx context.Context, sessionID string) (string, error)
}

type Options struct {
	Title string
	// MaxBytes caps the upload request body.
	MaxBytes int64
	// Session attaches the browser session id to every dashboard request.
	Session pkgrouter.Middleware
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, opts Options) {
	if opts.Title == "" {
		opts.Title = "Sheetboard"
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 32 << 20
	}

	mws := []pkgrouter.Middleware{opts.Session}

	end := &HTTPEndpoint{uc: uc, title: opts.Title, maxBytes: opts.MaxBytes, validate: newValidator()}

	r.GET("/", end.Index, mws...)
	r.GET("/tabs/:tab", end.Tab, mws...)
	r.POST("/upload", end.UploadForm, mws...)
	r.POST("/filters", end.FiltersForm, mws...)
	r.POST("/filters/submit", end.SubmitForm, mws...)

	r.POST("/api/uploads", end.Upload, mws...)
	r.GET("/api/table", end.Table, mws...)
	r.PUT("/api/filters", end.ChangeFilter, mws...)
	r.POST("/api/filters/submit", end.Submit, mws...)
	r.GET("/api/controls", end.Controls, mws...)
	r.GET("/api/analysis", end.Analysis, mws...)
	r.GET("/api/dataset", end.Dataset, mws...)
	r.DELETE("/api/session", end.Clear, mws...)
}

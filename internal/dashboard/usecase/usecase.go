package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgerror"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkguid"
)

// Store keeps one SessionState per session id.
type Store interface {
	Get(ctx context.Context, sessionID string) (entity.SessionState, error)
	Update(ctx context.Context, sessionID string, fn func(state entity.SessionState) (entity.SessionState, error)) (entity.SessionState, error)
	Delete(ctx context.Context, sessionID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.UploadEvent) error
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store    Store
	Events   EventPublisher
	Clock    Clock
	ID       pkguid.StringID
	BatchID  pkguid.NumberID
	Workers  int
	MaxFiles int
}

type Usecase struct {
	store    Store
	events   EventPublisher
	clock    Clock
	id       pkguid.StringID
	batchID  pkguid.NumberID
	reducer  Reducer
	maxFiles int
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	workers := dep.Workers
	if workers < 1 {
		workers = 4
	}

	return &Usecase{
		store:    dep.Store,
		events:   dep.Events,
		clock:    clock,
		id:       dep.ID,
		batchID:  dep.BatchID,
		reducer:  Reducer{Workers: workers},
		maxFiles: dep.MaxFiles,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (u *Usecase) Upload(ctx context.Context, sessionID string, files []entity.UploadedFile) (UploadResult, error) {
	if u.store == nil || u.batchID == nil {
		return UploadResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if sessionID == "" {
		return UploadResult{}, pkgerror.NewInvalidInput(errors.New("session is required"))
	}

	if u.maxFiles > 0 && len(files) > u.maxFiles {
		return UploadResult{}, pkgerror.NewInvalidInput(fmt.Errorf("at most %d files per upload", u.maxFiles))
	}

	action := UploadAction{Files: files, BatchID: u.batchID.Generate()}
	var report entity.UploadReport

	state, err := u.store.Update(ctx, sessionID, func(state entity.SessionState) (entity.SessionState, error) {
		next, err := u.reducer.Reduce(state, action)
		if len(action.Files) > 0 {
			report = next.Report
		}
		if err != nil {
			return state, err
		}
		next.UpdatedAt = u.clock.Now()
		return next, nil
	})

	for _, f := range report.Failed {
		slog.WarnContext(ctx, "skipped uploaded file", "batch_id", action.BatchID, "filename", f.Filename, "kind", f.Kind, "error", f.Err)
	}

	rows := 0
	for _, s := range report.Succeeded {
		rows += s.Rows
	}
	if len(files) > 0 {
		u.publish(ctx, sessionID, report, rows)
	}

	if err != nil {
		return UploadResult{Report: report}, mapUploadErr(err, report)
	}

	slog.InfoContext(ctx, "dataset combined", "batch_id", action.BatchID, "files", len(files), "failed", len(report.Failed), "rows", rows)

	return UploadResult{
		Report:   state.Report,
		Controls: state.Controls,
		Rows:     rows,
	}, nil
}

func (u *Usecase) ChangeFilter(ctx context.Context, sessionID string, in FilterInput) (TableResult, error) {
	action, err := parseFilter(in)
	if err != nil {
		return TableResult{}, err
	}

	return u.dispatchTable(ctx, sessionID, action)
}

// SubmitFilter stores the selection and applies it in one interaction.
func (u *Usecase) SubmitFilter(ctx context.Context, sessionID string, in FilterInput) (TableResult, error) {
	action, err := parseFilter(in)
	if err != nil {
		return TableResult{}, err
	}

	if _, err := u.dispatch(ctx, sessionID, action); err != nil {
		return TableResult{}, err
	}

	return u.dispatchTable(ctx, sessionID, SubmitAction{})
}

func (u *Usecase) Submit(ctx context.Context, sessionID string) (TableResult, error) {
	return u.dispatchTable(ctx, sessionID, SubmitAction{})
}

func (u *Usecase) SelectTab(ctx context.Context, sessionID, tabID string) (TabResult, error) {
	if _, err := u.dispatch(ctx, sessionID, SelectTabAction{TabID: tabID}); err != nil {
		return TabResult{}, err
	}

	return TabResult{TabID: tabID, State: SwitchTab(tabID)}, nil
}

func (u *Usecase) Clear(ctx context.Context, sessionID string) error {
	if err := u.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, pkgerror.ErrNotFound) {
		return normalizeErr(err)
	}
	return nil
}

// State returns the session state, or the initial state for a new session.
func (u *Usecase) State(ctx context.Context, sessionID string) (entity.SessionState, error) {
	state, err := u.store.Get(ctx, sessionID)
	if errors.Is(err, pkgerror.ErrNotFound) {
		return entity.SessionState{ActiveTab: entity.TabOverview}, nil
	}
	if err != nil {
		return entity.SessionState{}, normalizeErr(err)
	}

	return state, nil
}

func (u *Usecase) Table(ctx context.Context, sessionID string) (TableResult, error) {
	state, err := u.State(ctx, sessionID)
	if err != nil {
		return TableResult{}, err
	}

	return renderResult(state)
}

func (u *Usecase) Controls(ctx context.Context, sessionID string) (ControlsResult, error) {
	state, err := u.withDataset(ctx, sessionID)
	if err != nil {
		return ControlsResult{}, err
	}

	return ControlsResult{Controls: state.Controls, Selection: state.Selection}, nil
}

// Analysis summarises the rows the table currently shows.
func (u *Usecase) Analysis(ctx context.Context, sessionID string) (entity.Analysis, error) {
	state, err := u.withDataset(ctx, sessionID)
	if err != nil {
		return entity.Analysis{}, err
	}

	ds, err := DecodeDataset(state.Transport)
	if err != nil {
		return entity.Analysis{}, pkgerror.NewServer(err)
	}

	analysis, err := Analyze(ds, SelectRows(ds, state))
	if err != nil {
		return entity.Analysis{}, pkgerror.NewServer(err)
	}

	return analysis, nil
}

// Dataset returns the stored transport string.
func (u *Usecase) Dataset(ctx context.Context, sessionID string) (string, error) {
	state, err := u.withDataset(ctx, sessionID)
	if err != nil {
		return "", err
	}

	return state.Transport, nil
}

func (u *Usecase) withDataset(ctx context.Context, sessionID string) (entity.SessionState, error) {
	state, err := u.State(ctx, sessionID)
	if err != nil {
		return entity.SessionState{}, err
	}
	if !state.HasDataset() {
		return entity.SessionState{}, mapStateErr(entity.ErrNoDataset)
	}

	return state, nil
}

func (u *Usecase) dispatchTable(ctx context.Context, sessionID string, action Action) (TableResult, error) {
	state, err := u.dispatch(ctx, sessionID, action)
	if err != nil {
		return TableResult{}, err
	}

	return renderResult(state)
}

func (u *Usecase) dispatch(ctx context.Context, sessionID string, action Action) (entity.SessionState, error) {
	if sessionID == "" {
		return entity.SessionState{}, pkgerror.NewInvalidInput(errors.New("session is required"))
	}

	state, err := u.store.Update(ctx, sessionID, func(state entity.SessionState) (entity.SessionState, error) {
		next, err := u.reducer.Reduce(state, action)
		if err != nil {
			return state, err
		}
		next.UpdatedAt = u.clock.Now()
		return next, nil
	})
	if err != nil {
		slog.DebugContext(ctx, "action rejected", "action", action.Name(), "error", err)
		return entity.SessionState{}, mapStateErr(err)
	}

	return state, nil
}

func (u *Usecase) publish(ctx context.Context, sessionID string, report entity.UploadReport, rows int) {
	if u.events == nil || u.id == nil {
		return
	}

	event := entity.UploadEvent{
		EventID:    u.id.Generate(),
		SessionID:  sessionID,
		Report:     report,
		Rows:       rows,
		OccurredAt: u.clock.Now(),
	}
	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "batch_id", report.BatchID, "event_id", event.EventID, "error", err)
	}
}

func renderResult(state entity.SessionState) (TableResult, error) {
	table, err := RenderTable(state.Transport, state)
	if err != nil {
		return TableResult{}, pkgerror.NewServer(err)
	}

	return TableResult{Table: table, SubmitCount: state.SubmitCount}, nil
}

func parseFilter(in FilterInput) (ChangeFilterAction, error) {
	start, _, err := ParseDate(in.Start)
	if err != nil {
		return ChangeFilterAction{}, pkgerror.WithDetails(pkgerror.NewInvalidInput(err), map[string]string{"start_date": err.Error()})
	}

	end, _, err := ParseDate(in.End)
	if err != nil {
		return ChangeFilterAction{}, pkgerror.WithDetails(pkgerror.NewInvalidInput(err), map[string]string{"end_date": err.Error()})
	}

	users := make([]string, 0, len(in.Users))
	users = append(users, in.Users...)

	return ChangeFilterAction{Start: start, End: end, Users: users}, nil
}

func mapUploadErr(err error, report entity.UploadReport) error {
	details := make(map[string]string, len(report.Failed))
	for _, f := range report.Failed {
		details[f.Filename] = f.Err.Error()
	}

	switch {
	case errors.Is(err, entity.ErrParse), errors.Is(err, entity.ErrEmptyInput):
		return pkgerror.WithDetails(pkgerror.NewBusinessWrap(err, err.Error(), pkgerror.CodeInvalidInput), details)
	default:
		return normalizeErr(err)
	}
}

func mapStateErr(err error) error {
	if errors.Is(err, entity.ErrNoDataset) {
		return pkgerror.NewBusinessWrap(err, entity.ErrNoDataset.Error(), pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}

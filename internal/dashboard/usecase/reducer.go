package usecase

import (
	"fmt"
	"slices"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

// Action is a named state transition of one session.
type Action interface {
	Name() string
}

// UploadAction replaces the session dataset with the combined files.
type UploadAction struct {
	Files   []entity.UploadedFile
	BatchID int64
}

// ChangeFilterAction stores a new filter selection without applying it.
type ChangeFilterAction struct {
	Start time.Time
	End   time.Time
	Users []string
}

// SubmitAction applies the current selection to the table.
type SubmitAction struct{}

// SelectTabAction switches the visible tab.
type SelectTabAction struct {
	TabID string
}

// ClearAction forgets the dataset.
type ClearAction struct{}

func (UploadAction) Name() string       { return "upload" }
func (ChangeFilterAction) Name() string { return "change_filter" }
func (SubmitAction) Name() string       { return "submit" }
func (SelectTabAction) Name() string    { return "select_tab" }
func (ClearAction) Name() string        { return "clear" }

// Reducer computes the next session state. It holds no state of its own.
type Reducer struct {
	// Workers bounds parallel file decoding during an upload.
	Workers int
}

// Reduce applies action to state. On error the returned state is the
// previous one, except for a failed upload whose Report explains the failure.
func (rd Reducer) Reduce(state entity.SessionState, action Action) (entity.SessionState, error) {
	switch a := action.(type) {
	case UploadAction:
		return rd.upload(state, a)
	case ChangeFilterAction:
		if !state.HasDataset() {
			return state, entity.ErrNoDataset
		}
		state.Selection = entity.FilterSelection{Start: a.Start, End: a.End, Users: slices.Clone(a.Users)}
		return state, nil
	case SubmitAction:
		if !state.HasDataset() {
			return state, entity.ErrNoDataset
		}
		state.SubmitCount++
		return state, nil
	case SelectTabAction:
		state.ActiveTab = entity.TabID(a.TabID)
		return state, nil
	case ClearAction:
		return entity.SessionState{ActiveTab: state.ActiveTab}, nil
	default:
		return state, fmt.Errorf("unknown action %T", action)
	}
}

func (rd Reducer) upload(state entity.SessionState, a UploadAction) (entity.SessionState, error) {
	tab := state.ActiveTab
	if tab == "" {
		tab = entity.TabOverview
	}

	// An empty pick never replaces a dataset; only ClearAction drops it.
	if len(a.Files) == 0 {
		if state.HasDataset() {
			return state, fmt.Errorf("%w: no files selected", entity.ErrEmptyInput)
		}
		return entity.SessionState{ActiveTab: tab}, nil
	}

	ds, report, err := Combine(DecodeAll(a.Files, rd.Workers))
	report.BatchID = a.BatchID
	if err != nil {
		failed := state
		failed.Report = report
		return failed, err
	}

	controls, err := DeriveControls(ds, a.Files)
	if err != nil {
		failed := state
		failed.Report = report
		return failed, err
	}

	transport, err := EncodeDataset(ds)
	if err != nil {
		return state, err
	}

	return entity.SessionState{
		Transport:   transport,
		Controls:    controls,
		Selection:   controls.DefaultSelection(),
		SubmitCount: 0,
		ActiveTab:   tab,
		Report:      report,
	}, nil
}

package inbound

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/usecase"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/view"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgerror"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgsession"
)

// multipartOverhead leaves room for part headers and boundaries.
const multipartOverhead = 1 << 20

func (h *HTTPEndpoint) Index(ctx context.Context, r *http.Request) (any, error) {
	sid := pkgsession.ID(ctx)
	state, err := h.uc.State(ctx, sid)
	if err != nil {
		return nil, err
	}

	content, err := h.tabContent(ctx, sid, state, usecase.SwitchTab(string(state.ActiveTab)))
	if err != nil {
		return nil, err
	}

	return view.Page(h.title, state.ActiveTab, content), nil
}

func (h *HTTPEndpoint) Tab(ctx context.Context, r *http.Request) (any, error) {
	sid := pkgsession.ID(ctx)
	tabID := pkgrouter.GetParam(ctx, "tab")

	tab, err := h.uc.SelectTab(ctx, sid, tabID)
	if err != nil {
		return nil, err
	}

	state, err := h.uc.State(ctx, sid)
	if err != nil {
		return nil, err
	}

	content, err := h.tabContent(ctx, sid, state, tab.State)
	if err != nil {
		return nil, err
	}

	return view.TabSwitch(entity.TabID(tabID), content), nil
}

func (h *HTTPEndpoint) UploadForm(ctx context.Context, r *http.Request) (any, error) {
	sid := pkgsession.ID(ctx)
	if r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, h.maxBytes+multipartOverhead)
	}

	files, err := extractMultipartFiles(r, h.maxBytes)
	if err != nil {
		return h.overview(ctx, sid, alert(ctx, err))
	}

	if _, err := h.uc.Upload(ctx, sid, files); err != nil {
		return h.overview(ctx, sid, alert(ctx, err))
	}

	return h.overview(ctx, sid, nil)
}

func (h *HTTPEndpoint) FiltersForm(ctx context.Context, r *http.Request) (any, error) {
	in, err := filterForm(r)
	if err != nil {
		return tableAlert(ctx, err), nil
	}

	result, err := h.uc.ChangeFilter(ctx, pkgsession.ID(ctx), in)
	if err != nil {
		return tableAlert(ctx, err), nil
	}

	return view.DataTable(result.Table), nil
}

func (h *HTTPEndpoint) SubmitForm(ctx context.Context, r *http.Request) (any, error) {
	in, err := filterForm(r)
	if err != nil {
		return tableAlert(ctx, err), nil
	}

	result, err := h.uc.SubmitFilter(ctx, pkgsession.ID(ctx), in)
	if err != nil {
		return tableAlert(ctx, err), nil
	}

	return view.DataTable(result.Table), nil
}

func (h *HTTPEndpoint) tabContent(ctx context.Context, sid string, state entity.SessionState, tab entity.TabState) (gomponents.Node, error) {
	switch tab {
	case entity.TabStateOverview:
		return h.overviewNode(ctx, state, nil)
	case entity.TabStateAnalysis:
		if !state.HasDataset() {
			return view.Placeholder("Upload a file to analyse it."), nil
		}
		analysis, err := h.uc.Analysis(ctx, sid)
		if err != nil {
			return nil, err
		}
		return view.Analysis(analysis), nil
	default:
		return view.Placeholder(usecase.UnknownTabText), nil
	}
}

func (h *HTTPEndpoint) overview(ctx context.Context, sid string, alertNode gomponents.Node) (any, error) {
	state, err := h.uc.State(ctx, sid)
	if err != nil {
		return nil, err
	}

	return h.overviewNode(ctx, state, alertNode)
}

func (h *HTTPEndpoint) overviewNode(ctx context.Context, state entity.SessionState, alertNode gomponents.Node) (gomponents.Node, error) {
	table, err := usecase.RenderTable(state.Transport, state)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render stored dataset", "error", err)
		return nil, pkgerror.NewServer(err)
	}

	return view.Overview(view.OverviewModel{State: state, Table: table, Alert: alertNode}), nil
}

func filterForm(r *http.Request) (usecase.FilterInput, error) {
	if err := r.ParseForm(); err != nil {
		return usecase.FilterInput{}, pkgerror.NewInvalidFormat()
	}

	return usecase.FilterInput{
		Start: r.PostForm.Get("start_date"),
		End:   r.PostForm.Get("end_date"),
		Users: r.PostForm["users"],
	}, nil
}

// alert renders err for an htmx swap target. Server errors keep their
// details out of the page.
func alert(ctx context.Context, err error) gomponents.Node {
	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Type() == pkgerror.TypeServer {
		slog.ErrorContext(ctx, "interaction failed", "error", err)
		return view.Alert("Internal server error", nil)
	}

	msg := perr.Msg()
	if msg == "" {
		msg = perr.Error()
	}
	return view.Alert(msg, perr.Details())
}

func tableAlert(ctx context.Context, err error) gomponents.Node {
	return html.Div(html.ID(view.TableID), alert(ctx, err))
}

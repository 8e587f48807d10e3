package view

import (
	"slices"
	"sort"
	"time"

	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

// OverviewModel is what the Overview tab needs to render.
type OverviewModel struct {
	State entity.SessionState
	Table entity.Table
	// Alert, when set, replaces the upload report.
	Alert gomponents.Node
}

// Overview lays out the upload box and filters beside the data table.
func Overview(m OverviewModel) gomponents.Node {
	report := m.Alert
	if report == nil {
		report = Report(m.State.Report)
	}

	return html.Div(html.ID(OverviewID), html.Class("row g-3"),
		html.Div(html.Class("col-md-3"),
			UploadBox(),
			FileInfo(m.State.Controls.Files),
			report,
			gomponents.If(m.State.HasDataset(), Filters(m.State.Controls, m.State.Selection)),
		),
		html.Div(html.Class("col-md-9"),
			DataTable(m.Table),
		),
	)
}

// UploadBox posts the picked files and swaps the whole overview.
func UploadBox() gomponents.Node {
	return html.Form(html.ID("upload-data"), html.Class("border border-2 rounded p-3 mb-3 text-center"),
		hx.Post("/upload"),
		hx.Encoding("multipart/form-data"),
		hx.Target("#"+OverviewID),
		hx.Swap("outerHTML"),
		html.Label(html.For("files"), html.Class("form-label"), gomponents.Text("Drag and drop or select files")),
		html.Input(html.Type("file"), html.ID("files"), html.Name("files"), html.Class("form-control mb-2"),
			html.Multiple(), html.Accept(".csv,.xls,.xlsx")),
		html.Button(html.Type("submit"), html.Class("btn btn-primary btn-sm"), gomponents.Text("Upload")),
	)
}

// FileInfo lists every uploaded file with its modification time.
func FileInfo(files []entity.FileInfo) gomponents.Node {
	if len(files) == 0 {
		return html.P(html.ID("file-info"), html.Class("text-muted small"), gomponents.Text("No file uploaded yet."))
	}

	return html.Ul(html.ID("file-info"), html.Class("list-unstyled small"),
		gomponents.Map(files, func(f entity.FileInfo) gomponents.Node {
			return html.Li(
				html.Strong(gomponents.Text(f.Name)),
				gomponents.Text(" uploaded "+f.UploadedAt.Format(time.DateTime)),
			)
		}),
	)
}

// Report lists the files that were skipped during the last upload.
func Report(report entity.UploadReport) gomponents.Node {
	if len(report.Failed) == 0 {
		return nil
	}

	return html.Div(html.ID("upload-report"), html.Class("alert alert-warning small"), html.Role("alert"),
		html.Strong(gomponents.Textf("%d of %d files skipped", len(report.Failed), len(report.Failed)+len(report.Succeeded))),
		html.Ul(html.Class("mb-0 mt-2"),
			gomponents.Map(report.Failed, func(f entity.FileError) gomponents.Node {
				return html.Li(html.Code(gomponents.Text(f.Filename)), gomponents.Text(": "+f.Err.Error()))
			}),
		),
	)
}

// Filters is the date range picker and user multi-select. Changing a field
// re-renders the table; the submit button applies the selection.
func Filters(controls entity.Controls, sel entity.FilterSelection) gomponents.Node {
	changed := []gomponents.Node{
		hx.Post("/filters"),
		hx.Trigger("change"),
		hx.Include("#" + FiltersID),
		hx.Target("#" + TableID),
		hx.Swap("outerHTML"),
	}

	return html.Form(html.ID(FiltersID),
		hx.Post("/filters/submit"),
		hx.Target("#"+TableID),
		hx.Swap("outerHTML"),
		html.Div(html.Class("mb-2"),
			html.Label(html.For("start_date"), html.Class("form-label"), gomponents.Text("Start date")),
			html.Input(html.Type("date"), html.ID("start_date"), html.Name("start_date"), html.Class("form-control"),
				html.Min(dateValue(controls.MinDate)), html.Max(dateValue(controls.MaxDate)),
				html.Value(dateValue(sel.Start)),
				gomponents.Group(changed),
			),
		),
		html.Div(html.Class("mb-2"),
			html.Label(html.For("end_date"), html.Class("form-label"), gomponents.Text("End date")),
			html.Input(html.Type("date"), html.ID("end_date"), html.Name("end_date"), html.Class("form-control"),
				html.Min(dateValue(controls.MinDate)), html.Max(dateValue(controls.MaxDate)),
				html.Value(dateValue(sel.End)),
				gomponents.Group(changed),
			),
		),
		html.Div(html.Class("mb-2"),
			html.Label(html.For("users"), html.Class("form-label"), gomponents.Text("Users")),
			html.Select(html.ID("users"), html.Name("users"), html.Class("form-select"), html.Multiple(),
				gomponents.Group(changed),
				gomponents.Map(controls.Users, func(u string) gomponents.Node {
					return html.Option(html.Value(u), gomponents.If(slices.Contains(sel.Users, u), html.Selected()), gomponents.Text(u))
				}),
			),
		),
		html.Button(html.Type("submit"), html.ID("submit-button"), html.Class("btn btn-secondary btn-sm"), gomponents.Text("Submit")),
	)
}

func dateValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

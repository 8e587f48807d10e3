// Package view renders the dashboard with gomponents. Interactive parts talk
// to the server through htmx attributes and are swapped in by element id.
package view

import (
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

const (
	TabContentID = "tab-content"
	OverviewID   = "overview"
	TableID      = "data-table"
	FiltersID    = "filters"
)

const (
	htmxSrc      = "https://unpkg.com/htmx.org@2.0.4"
	bootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
)

// Page is the full document: title, tab bar and the active tab's content.
func Page(title string, active entity.TabID, content gomponents.Node) gomponents.Node {
	return html.Doctype(
		html.HTML(html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(gomponents.Text(title)),
				html.Link(html.Rel("stylesheet"), html.Href(bootstrapCSS)),
				html.Script(html.Src(htmxSrc)),
			),
			html.Body(
				html.Div(html.Class("container-fluid py-3"),
					html.H1(html.Class("h3 mb-3"), gomponents.Text(title)),
					Tabs(active),
					html.Div(html.ID(TabContentID), html.Class("pt-3"), content),
				),
			),
		),
	)
}

type tab struct {
	id    entity.TabID
	label string
}

var tabs = []tab{
	{id: entity.TabOverview, label: "Overview"},
	{id: entity.TabAnalysis, label: "Analysis"},
}

// Tabs is the tab bar. Clicking a tab loads its content into the tab content area.
func Tabs(active entity.TabID, attrs ...gomponents.Node) gomponents.Node {
	if active == "" {
		active = entity.TabOverview
	}

	return html.Ul(html.Class("nav nav-tabs"), html.ID("tabs"), html.Role("tablist"),
		gomponents.Group(attrs),
		gomponents.Map(tabs, func(t tab) gomponents.Node {
			class := "nav-link"
			if t.id == active {
				class += " active"
			}
			return html.Li(html.Class("nav-item"),
				html.Button(html.Type("button"), html.Class(class), html.ID(string(t.id)),
					hx.Get("/tabs/"+string(t.id)),
					hx.Target("#"+TabContentID),
					gomponents.Text(t.label),
				),
			)
		}),
	)
}

// TabSwitch is the response to a tab click: the new content plus the tab bar
// swapped out of band so the active tab follows.
func TabSwitch(active entity.TabID, content gomponents.Node) gomponents.Node {
	return gomponents.Group{content, Tabs(active, hx.SwapOOB("true"))}
}

// Placeholder is shown for a tab nothing renders.
func Placeholder(text string) gomponents.Node {
	return html.P(html.Class("text-muted"), gomponents.Text(text))
}

// Alert shows a failed interaction with one line per detail.
func Alert(msg string, details map[string]string) gomponents.Node {
	keys := sortedKeys(details)

	return html.Div(html.Class("alert alert-danger"), html.Role("alert"),
		html.Strong(gomponents.Text(msg)),
		gomponents.If(len(keys) > 0,
			html.Ul(html.Class("mb-0 mt-2"),
				gomponents.Map(keys, func(k string) gomponents.Node {
					return html.Li(html.Code(gomponents.Text(k)), gomponents.Text(": "+details[k]))
				}),
			),
		),
	)
}

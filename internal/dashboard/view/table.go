package view

import (
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

// DataTable renders the table; with no columns it shows the empty placeholder.
func DataTable(table entity.Table) gomponents.Node {
	if len(table.Columns) == 0 {
		return html.Div(html.ID(TableID), html.Class("text-muted"), gomponents.Text("Upload a file to see its data."))
	}

	return html.Div(html.ID(TableID), html.Class("table-responsive"),
		html.Small(html.Class("text-muted"), gomponents.Textf("%d of %d rows", len(table.Rows), table.Total)),
		html.Table(html.Class("table table-sm table-striped"),
			html.THead(
				html.Tr(gomponents.Map(table.Columns, func(c entity.Column) gomponents.Node {
					return html.Th(gomponents.Text(c.Name))
				})),
			),
			html.TBody(
				gomponents.Map(table.Rows, func(row map[string]string) gomponents.Node {
					return html.Tr(gomponents.Map(table.Columns, func(c entity.Column) gomponents.Node {
						return html.Td(gomponents.Text(row[c.ID]))
					}))
				}),
			),
		),
	)
}

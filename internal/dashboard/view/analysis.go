package view

import (
	"strconv"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

// Analysis renders one summary row per user over the selected rows.
func Analysis(a entity.Analysis) gomponents.Node {
	if len(a.Users) == 0 {
		return html.P(html.ID("analysis"), html.Class("text-muted"), gomponents.Text("No rows match the current filters."))
	}

	return html.Div(html.ID("analysis"), html.Class("table-responsive"),
		html.Table(html.Class("table table-sm"),
			html.THead(
				html.Tr(
					html.Th(gomponents.Text("User")),
					html.Th(gomponents.Text("Rows")),
					html.Th(gomponents.Text("First date")),
					html.Th(gomponents.Text("Last date")),
					gomponents.Map(a.NumericColumns, func(c string) gomponents.Node {
						return html.Th(gomponents.Text(c+" (sum / mean / median)"))
					}),
				),
			),
			html.TBody(
				gomponents.Map(a.Users, func(u entity.UserSummary) gomponents.Node {
					return html.Tr(
						html.Td(gomponents.Text(u.User)),
						html.Td(gomponents.Text(strconv.Itoa(u.Rows))),
						html.Td(gomponents.Text(dateValue(u.FirstDate))),
						html.Td(gomponents.Text(dateValue(u.LastDate))),
						gomponents.Map(u.Numeric, func(n entity.NumericSummary) gomponents.Node {
							if n.Count == 0 {
								return html.Td(gomponents.Text("-"))
							}
							return html.Td(gomponents.Text(number(n.Sum) + " / " + number(n.Mean) + " / " + number(n.Median)))
						}),
					)
				}),
			),
		),
	)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}


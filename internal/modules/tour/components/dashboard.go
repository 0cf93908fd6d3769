package components

import (
	"strconv"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/tourofheroes/heroes/internal/domain"
)

// Dashboard shows the top heroes as tiles followed by the search box.
func Dashboard(top []domain.Hero) gomponents.Node {
	return html.Div(
		html.H2(gomponents.Text("Top Heroes")),
		html.Div(
			html.Class("heroes-menu"),
			gomponents.Map(top, func(h domain.Hero) gomponents.Node {
				return html.A(
					html.Href(DetailPath(h.ID)),
					gomponents.Text(h.Name),
				)
			}),
		),
		SearchBox(),
	)
}

// DetailPath is the route of a hero's detail page.
func DetailPath(id int) string {
	return "/detail/" + strconv.Itoa(id)
}

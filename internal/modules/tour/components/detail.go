package components

import (
	"strconv"
	"strings"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/tourofheroes/heroes/internal/domain"
)

// HeroDetail renders the edit form for hero, or a notice when it is nil.
func HeroDetail(hero *domain.Hero) gomponents.Node {
	if hero == nil {
		return html.Div(
			html.Class("hero-detail"),
			html.P(gomponents.Text("No hero to show.")),
			backLink(),
		)
	}

	return html.Div(
		html.Class("hero-detail"),
		html.H2(gomponents.Text(strings.ToUpper(hero.Name)+" Details")),
		html.Div(html.Span(gomponents.Text("id: ")), gomponents.Text(strconv.Itoa(hero.ID))),
		html.Form(
			html.Method("post"),
			html.Action(DetailPath(hero.ID)),
			html.Div(
				html.Label(html.For("hero-name"), gomponents.Text("Hero name: ")),
				html.Input(html.ID("hero-name"), html.Name("name"), html.Type("text"), html.Value(hero.Name)),
			),
			backLink(),
			html.Button(html.Type("submit"), gomponents.Text("save")),
		),
	)
}

func backLink() gomponents.Node {
	return html.A(html.Href("/back"), html.Class("button"), gomponents.Text("go back"))
}

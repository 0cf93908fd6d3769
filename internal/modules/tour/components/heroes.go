package components

import (
	"strconv"

	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"

	"github.com/tourofheroes/heroes/internal/domain"
)

// HeroListID is the list new heroes are appended to.
const HeroListID = "hero-list"

// HeroList renders the heroes page: the add form and every hero.
func HeroList(heroes []domain.Hero) gomponents.Node {
	return html.Div(
		html.H2(gomponents.Text("My Heroes")),
		html.Form(
			html.Class("add-hero"),
			html.Method("post"),
			html.Action("/heroes"),
			hx.Post("/heroes"),
			hx.Target("#"+HeroListID),
			hx.Swap("beforeend"),
			gomponents.Attr("hx-on::after-request", "this.reset()"),
			html.Label(html.For("new-hero"), gomponents.Text("Hero name: ")),
			html.Input(html.ID("new-hero"), html.Name("name"), html.Type("text"), html.AutoComplete("off")),
			html.Button(html.Type("submit"), html.Class("add-button"), gomponents.Text("Add hero")),
		),
		html.Ul(
			html.ID(HeroListID),
			html.Class("heroes"),
			gomponents.Map(heroes, HeroItem),
		),
	)
}

// HeroItem is one row of the list. Its delete button removes the row as soon
// as the server answers, which it does without waiting for the delete.
func HeroItem(h domain.Hero) gomponents.Node {
	return html.Li(
		html.ID("hero-"+strconv.Itoa(h.ID)),
		html.A(
			html.Href(DetailPath(h.ID)),
			html.Span(html.Class("badge"), gomponents.Text(strconv.Itoa(h.ID))),
			gomponents.Text(" "+h.Name),
		),
		html.Button(
			html.Type("button"),
			html.Class("delete"),
			html.Title("delete hero"),
			hx.Delete("/heroes/"+strconv.Itoa(h.ID)),
			hx.Target("closest li"),
			hx.Swap("outerHTML"),
			gomponents.Text("x"),
		),
	)
}

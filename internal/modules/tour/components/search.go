package components

import (
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"

	"github.com/tourofheroes/heroes/internal/domain"
)

// SearchResultsID is the element every search result replaces.
const SearchResultsID = "search-results"

// SearchBox sends every keystroke over the search socket. Results come back
// as SearchResults fragments and replace the list by id.
func SearchBox() gomponents.Node {
	return html.Div(
		html.ID("search-component"),
		hx.Ext("ws"),
		gomponents.Attr("ws-connect", "/ws/search"),
		html.Label(html.For("search-box"), gomponents.Text("Hero Search")),
		html.Input(
			html.ID("search-box"),
			html.Name("term"),
			html.Type("search"),
			html.AutoComplete("off"),
			gomponents.Attr("ws-send"),
			hx.Trigger("input"),
		),
		SearchResults(nil),
	)
}

// SearchResults lists matching heroes as links to their detail pages.
func SearchResults(heroes []domain.Hero) gomponents.Node {
	return html.Ul(
		html.ID(SearchResultsID),
		html.Class("search-result"),
		gomponents.Map(heroes, func(h domain.Hero) gomponents.Node {
			return html.Li(html.A(html.Href(DetailPath(h.ID)), gomponents.Text(h.Name)))
		}),
	)
}

package view

import (
	"github.com/a-h/templ"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"
)

const (
	appTitle       = "Tour of Heroes"
	htmxScript     = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSScript   = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
	stylesheet     = "/static/css/heroes.css"
	messagesSocket = "/ws/messages"
)

// MessagesListID is the element appended messages are swapped into.
const MessagesListID = "messages-list"

// Page is what the layout needs to know about the page it wraps.
type Page struct {
	Title    string
	Path     string
	Messages []string
}

// Title returns the document title for a page title.
func Title(title string) string {
	if title != "" {
		return title + " - " + appTitle
	}
	return appTitle
}

type navLink struct {
	href  string
	label string
}

var navLinks = []navLink{
	{href: "/dashboard", label: "Dashboard"},
	{href: "/heroes", label: "Heroes"},
}

// Layout is the document shell shared by every page: navigation on top, the
// page content, then the message log.
func Layout(p Page, content gomponents.Node) templ.Component {
	return GomponentToTempl(
		html.Doctype(
			html.HTML(
				html.Lang("en"),
				html.Head(
					html.Meta(html.Charset("utf-8")),
					html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
					html.TitleEl(gomponents.Text(Title(p.Title))),
					html.Link(html.Rel("stylesheet"), html.Href(stylesheet)),
					html.Script(html.Src(htmxScript)),
					html.Script(html.Src(htmxWSScript)),
				),
				html.Body(
					html.H1(gomponents.Text(appTitle)),
					nav(p.Path),
					html.Main(html.ID("content"), content),
					MessagePanel(p.Messages),
				),
			),
		),
	)
}

func nav(current string) gomponents.Node {
	return html.Nav(
		gomponents.Map(navLinks, func(l navLink) gomponents.Node {
			return html.A(
				html.Href(l.href),
				gomponents.If(l.href == current, html.Class("active")),
				gomponents.Text(l.label),
			)
		}),
	)
}

// MessagePanel lists every message and keeps listening for new ones.
func MessagePanel(messages []string) gomponents.Node {
	return html.Div(
		html.Class("messages"),
		hx.Ext("ws"),
		gomponents.Attr("ws-connect", messagesSocket),
		html.H2(gomponents.Text("Messages")),
		html.Ul(
			html.ID(MessagesListID),
			gomponents.Map(messages, MessageItem),
		),
	)
}

// MessageItem renders a single message.
func MessageItem(text string) gomponents.Node {
	return html.Li(gomponents.Text(text))
}

// AppendedMessage is the out-of-band fragment that appends one message to
// the panel of every open page.
func AppendedMessage(text string) gomponents.Node {
	return html.Div(
		hx.SwapOOB("beforeend:#"+MessagesListID),
		MessageItem(text),
	)
}

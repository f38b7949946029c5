package ui

import (
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"

func docPage(title, staticBase string, body ...Node) Node {
	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title)),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href(stylesheetHref(staticBase))),
			Script(Raw(themeInitScript)),
			Script(Type("module"), Src(datastarScript)),
		),
		Body(
			Main(
				Class("container margin-vert--lg"),
				H1(Class("page-title"), Text(title)),
				Group(body),
			),
		),
	)
}

// ErrorPage renders a standalone error document.
func ErrorPage(title, message, homeHref string) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title)),
			Link(Rel("stylesheet"), Href(stylesheetHref(defaultStaticBase))),
		),
		Body(
			Main(
				Class("container margin-vert--lg"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				If(homeHref != "", P(A(Href(homeHref), Text("Back to index")))),
			),
		),
	)
}

func cardClass(extra ...string) string {
	parts := []string{"card", "padding--md", "margin-bottom--md"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "text--muted"
}

func quickFilterCard(placeholder string) Node {
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": ""}),
		Label(Class("sr-only"), Text("Quick filter")),
		Input(Type("search"), Class("form-control"), Placeholder(placeholder), data.Bind("q"), AutoComplete("off")),
	)
}

func emptyStateCard(message string) Node {
	return Div(
		Class(cardClass("blankslate")),
		P(Class(mutedClass()), Text(message)),
	)
}

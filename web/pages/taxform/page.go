// Package taxform renders the registration form: the full page on first
// load and the form fragment that the page script swaps in after each event.
package taxform

import (
	"taxform/form"
	"taxform/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// RootID is the element whose contents are replaced by a fragment.
const RootID = "taxform-root"

// Page is the whole document.
type Page struct {
	shared.Page
	View form.View
}

// NewPage builds the page for a session's current form.
func NewPage(v form.View) Page {
	return Page{
		Page: shared.Page{
			Title:    "Tax Registration",
			Subtitle: "Register with your name, country and tax ID",
		},
		View: v,
	}
}

// Render generates the complete HTML document.
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.renderHead(b),
		p.renderBody(b),
	)

	return b.String()
}

func (p Page) renderHead(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(p.Title),
		b.Link("rel", "icon", "href", "/favicon.ico"),
		b.Link("rel", "stylesheet", "href", "/static/css/taxform.css?v=1"),
	)
}

func (p Page) renderBody(b *element.Builder) any {
	return b.Body().R(
		element.RenderComponents(b, p.Banner()),

		b.Main("class", "container").R(
			b.Div("id", RootID).R(
				element.RenderComponents(b, Form{View: p.View}),
			),
		),

		element.RenderComponents(b, p.Footer()),

		b.Script("src", "/static/js/taxform.js?v=1").R(),
	)
}

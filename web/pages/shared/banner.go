package shared

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Banner is the header strip at the top of every page.
type Banner struct {
	Title    string
	Subtitle string
}

// Render implements element.Component
func (bn Banner) Render(b *element.Builder) (x any) {
	b.HeaderClass("banner").R(
		b.H1Class("banner-title").T(html.EscapeString(bn.Title)),
		bn.renderSubtitle(b),
	)
	return
}

func (bn Banner) renderSubtitle(b *element.Builder) (x any) {
	if bn.Subtitle == "" {
		return
	}
	b.P("class", "banner-subtitle").T(html.EscapeString(bn.Subtitle))
	return
}

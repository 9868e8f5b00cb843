package comps

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Heading is a section title with an optional lead line.
type Heading struct {
	Title string
	Lead  string
}

func (h Heading) Render(b *element.Builder) (x any) {
	b.DivClass("heading").R(
		b.H2("class", "heading-title").T(html.EscapeString(h.Title)),
		b.Wrap(func() {
			if h.Lead != "" {
				b.P("class", "heading-lead").T(html.EscapeString(h.Lead))
			}
		}),
	)
	return
}

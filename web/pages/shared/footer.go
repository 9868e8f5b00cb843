package shared

import "github.com/rohanthewiz/element"

// Footer is stateless.
type Footer struct{}

func (f Footer) Render(b *element.Builder) (x any) {
	b.Footer("class", "footer").R(
		b.P("class", "footer-note").T("Your details are only sent when you press Submit."),
	)
	return
}

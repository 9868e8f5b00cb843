package taxform

import (
	"html"
	"strings"

	"taxform/form"

	"github.com/rohanthewiz/element"
)

// TextField is a labelled single-line input.
type TextField struct {
	Field form.FieldView
}

func (tf TextField) Render(b *element.Builder) (x any) {
	f := tf.Field

	b.Div("class", "form-group", "data-testid", f.Name).R(
		b.Label("class", "form-label", "for", inputID(f.Name)).T(html.EscapeString(f.Label)),
		b.Input(inputAttrs(f, "oninput", "taxform.input(this)")...),
		renderFeedback(b, f),
	)
	return
}

func inputID(name string) string {
	return "field-" + name
}

// inputAttrs holds the attributes every form input shares, followed by extra.
func inputAttrs(f form.FieldView, extra ...string) []string {
	attrs := []string{
		"type", "text",
		"id", inputID(f.Name),
		"name", f.Name,
		"class", classes("form-input", f.ValidityClass()),
		"value", html.EscapeString(f.Value),
		"placeholder", html.EscapeString(f.Placeholder),
		"data-field", f.Name,
		"autocomplete", "off",
		"spellcheck", "false",
	}
	if f.Valid != nil && !*f.Valid {
		attrs = append(attrs, "aria-invalid", "true")
	}
	return append(attrs, extra...)
}

// renderFeedback writes the error text for an invalid field, else its hint.
func renderFeedback(b *element.Builder, f form.FieldView) (x any) {
	if f.Valid != nil && !*f.Valid {
		b.Div("class", "invalid-feedback").T(html.EscapeString(f.Error))
		return
	}
	if f.Hint != "" {
		b.Small("class", "form-hint").T(html.EscapeString(f.Hint))
	}
	return
}

func classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

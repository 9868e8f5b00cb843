package taxform

import (
	"taxform/form"
	"taxform/web/pages/comps"

	"github.com/rohanthewiz/element"
)

// Form is the fragment returned by POST /form/events.
type Form struct {
	View form.View
}

// RenderForm renders v on its own, for fragment responses.
func RenderForm(v form.View) string {
	b := element.NewBuilder()
	Form{View: v}.Render(b)
	return b.String()
}

func (f Form) Render(b *element.Builder) (x any) {
	v := f.View

	b.Form("id", "taxform", "class", "taxform", "novalidate", "novalidate",
		"data-status", string(v.Status),
		"onsubmit", "return taxform.submit(event)").R(
		element.RenderComponents(b,
			comps.Heading{Title: "Register", Lead: "All fields are required."},
			TextField{Field: v.Username},
			AutocompleteInput{
				Field:       v.Country,
				Suggestions: v.Suggestions,
				Active:      v.Active,
				Open:        v.Open,
			},
			TextField{Field: v.TaxID},
		),
		f.renderActions(b),
		element.RenderComponents(b, Message{Pending: v.Pending(), Result: v.Result}),
	)
	return
}

func (f Form) renderActions(b *element.Builder) (x any) {
	attrs := []string{"type", "submit", "class", "btn btn-primary", "id", "submit-btn"}
	label := "Submit"
	if f.View.Pending() {
		attrs = append(attrs, "disabled", "disabled", "aria-busy", "true")
		label = "Submitting..."
	}

	b.DivClass("form-actions").R(
		b.Button(attrs...).T(label),
	)
	return
}

package taxform

import (
	"html"
	"strconv"

	"taxform/form"

	"github.com/rohanthewiz/element"
)

const suggestionsID = "country-suggestions"

// AutocompleteInput is the country input with its suggestion list.
type AutocompleteInput struct {
	Field       form.FieldView
	Suggestions []string
	Active      int
	Open        bool
}

func (ac AutocompleteInput) Render(b *element.Builder) (x any) {
	f := ac.Field

	b.Div("class", "form-group autocomplete", "data-testid", f.Name).R(
		b.Label("class", "form-label", "for", inputID(f.Name)).T(html.EscapeString(f.Label)),
		b.Input(inputAttrs(f, ac.comboboxAttrs()...)...),
		ac.renderSuggestions(b),
		renderFeedback(b, f),
	)
	return
}

func (ac AutocompleteInput) comboboxAttrs() []string {
	attrs := []string{
		"data-testid", "autocomplete",
		"role", "combobox",
		"aria-autocomplete", "list",
		"aria-controls", suggestionsID,
		"aria-expanded", strconv.FormatBool(ac.isOpen()),
		"oninput", "taxform.input(this)",
		"onkeydown", "return taxform.key(event, this)",
		"onblur", "taxform.blur(this)",
	}
	if ac.isOpen() && ac.Active >= 0 && ac.Active < len(ac.Suggestions) {
		attrs = append(attrs, "aria-activedescendant", suggestionID(ac.Active))
	}
	return attrs
}

func (ac AutocompleteInput) isOpen() bool {
	return ac.Open && len(ac.Suggestions) > 0
}

func (ac AutocompleteInput) renderSuggestions(b *element.Builder) (x any) {
	if !ac.isOpen() {
		return
	}

	b.Ul("class", "list-group suggestions", "id", suggestionsID, "role", "listbox").R(
		b.Wrap(func() {
			for i, s := range ac.Suggestions {
				active := i == ac.Active
				cls := "list-group-item"
				if active {
					cls += " suggestion-active"
				}
				b.Li("class", cls,
					"id", suggestionID(i),
					"role", "option",
					"aria-selected", strconv.FormatBool(active),
					"data-index", strconv.Itoa(i),
					"onmousedown", "return taxform.select(event, "+strconv.Itoa(i)+")",
				).T(html.EscapeString(s))
			}
		}),
	)
	return
}

func suggestionID(i int) string {
	return "suggestion-" + strconv.Itoa(i)
}

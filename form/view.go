package form

import (
	"strings"

	"taxform/models"
)

// FieldView is everything a renderer needs for one input.
type FieldView struct {
	Name        string // payload key and data-testid
	Label       string
	Value       string
	Valid       *bool
	Placeholder string
	Hint        string
	// Error explains why the field is invalid; empty otherwise.
	Error string
}

// ValidityClass is the CSS class for the field's validity: "is-valid",
// "is-invalid" or "" while unset.
func (f FieldView) ValidityClass() string {
	switch {
	case f.Valid == nil:
		return ""
	case *f.Valid:
		return "is-valid"
	default:
		return "is-invalid"
	}
}

// View is an immutable render input, produced after every mutation.
type View struct {
	Username FieldView
	Country  FieldView
	TaxID    FieldView

	Suggestions []string
	Active      int
	Open        bool

	Status Status
	Result *models.SubmissionResult
}

// Pending reports whether a submission is in flight.
func (v View) Pending() bool {
	return v.Status == StatusSubmitting
}

// View renders the controller state into a View.
func (c *Controller) View() View {
	v := View{
		Username: FieldView{
			Name:        models.FieldUsername,
			Label:       "Username",
			Value:       c.username.Value,
			Valid:       copyBool(c.username.Valid),
			Placeholder: "Your name",
			Hint:        "At least 2 characters",
		},
		Country: FieldView{
			Name:        models.FieldCountry,
			Label:       "Country",
			Value:       c.picker.Value(),
			Valid:       copyBool(c.country.Valid),
			Placeholder: "Start typing a country",
		},
		TaxID: FieldView{
			Name:        models.FieldTaxID,
			Label:       "Tax ID",
			Value:       c.taxID.Value,
			Valid:       copyBool(c.taxID.Valid),
			Placeholder: "Select a country first",
		},
		Active: c.picker.Active(),
		Open:   c.picker.IsOpen(),
		Status: c.status,
	}

	if v.Open {
		v.Suggestions = append([]string(nil), c.picker.Suggestions()...)
	} else {
		v.Active = NoActive
	}

	for _, f := range []*FieldView{&v.Username, &v.Country, &v.TaxID} {
		if f.Valid != nil && !*f.Valid {
			f.Error = fieldErrors[f.Name]
		}
	}
	if v.TaxID.Error != "" {
		if why := models.ExplainTaxID(c.taxID.Value, c.country.Value); why != "" {
			v.TaxID.Error = strings.TrimSuffix(v.TaxID.Error, ".") + ": " + why + "."
		}
	}

	if rule, ok := models.TaxIDRule(c.country.Value); ok {
		v.TaxID.Placeholder = rule.Example
		v.TaxID.Hint = rule.Hint
	}

	if c.result != nil {
		r := *c.result
		v.Result = &r
	}
	return v
}

var fieldErrors = map[string]string{
	models.FieldUsername: "Please enter at least 2 characters.",
	models.FieldCountry:  "Please choose a country from the list.",
	models.FieldTaxID:    "This tax ID does not match the format for the selected country.",
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

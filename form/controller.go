// Package form holds the state of the tax registration form: the three
// fields, the country autocomplete and the submission state machine.
// It knows nothing about HTML or terminals; front-ends apply events to a
// Controller and render its View after each one.
package form

import (
	"context"

	"taxform/models"

	"github.com/rohanthewiz/logger"
)

// Status is the submission state.
//
//	Idle -> Validating -> Idle (invalid)
//	                   -> Submitting -> Success | Error | Offline
//
// Success, Error and Offline are display states; a new submission may start
// from any of them as from Idle.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
	StatusOffline    Status = "offline"
)

// Key is a navigation key for the country input.
type Key string

const (
	KeyDown   Key = "ArrowDown"
	KeyUp     Key = "ArrowUp"
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
)

// Controller owns the authoritative field state. The country picker reports
// to it through its update callback and gets the value pushed back down.
type Controller struct {
	username Field
	country  Field
	taxID    Field
	picker   *Autocomplete

	status    Status
	result    *models.SubmissionResult
	attempted bool // a submission was tried; edits now revalidate
}

// State is a Controller snapshot for the session store.
type State struct {
	Username  FieldState               `msgpack:"username"`
	Country   FieldState               `msgpack:"country"`
	TaxID     FieldState               `msgpack:"taxId"`
	Picker    AutocompleteState        `msgpack:"picker"`
	Status    Status                   `msgpack:"status"`
	Result    *models.SubmissionResult `msgpack:"result,omitempty"`
	Attempted bool                     `msgpack:"attempted"`
}

// NewController creates an empty form whose country picker suggests from
// countries.
func NewController(countries []string) *Controller {
	c := &Controller{
		username: newField(models.UsernameValidator),
		country:  newField(models.CountryValidator),
		taxID:    newField(models.TaxIDValidator),
		status:   StatusIdle,
	}
	c.picker = NewAutocomplete(countries, c.setCountry)
	return c
}

// SetUsername records a username edit.
func (c *Controller) SetUsername(v string) {
	c.username.Value = v
	if c.attempted {
		c.username.Validate(c.validationContext())
	}
}

// SetTaxID records a tax ID edit.
func (c *Controller) SetTaxID(v string) {
	c.taxID.Value = v
	if c.attempted {
		c.taxID.Validate(c.validationContext())
	}
}

// TypeCountry feeds typed text to the country picker.
func (c *Controller) TypeCountry(text string) {
	c.picker.Type(text)
}

// CountryKey applies a navigation key to the country picker. It reports
// whether the key was consumed; an unconsumed Enter is free to submit.
func (c *Controller) CountryKey(k Key) bool {
	switch k {
	case KeyDown:
		c.picker.Down()
		return true
	case KeyUp:
		c.picker.Up()
		return true
	case KeyEnter:
		return c.picker.Enter()
	case KeyEscape:
		open := c.picker.IsOpen()
		c.picker.Close()
		return open
	}
	return false
}

// ClickSuggestion picks the suggestion at index i.
func (c *Controller) ClickSuggestion(i int) bool {
	return c.picker.Click(i)
}

// CloseSuggestions hides the country list, as on blur.
func (c *Controller) CloseSuggestions() {
	c.picker.Close()
}

// setCountry receives every update the picker emits.
func (c *Controller) setCountry(v string) {
	c.country.Value = v
	c.picker.SetValue(v)
	if c.attempted {
		ctx := c.validationContext()
		c.country.Validate(ctx)
		c.taxID.Validate(ctx)
	}
}

func (c *Controller) validationContext() models.ValidationContext {
	return models.ValidationContext{Country: c.country.Value}
}

// Validate runs every field validator, marks each field and reports whether
// all passed. From now on edits revalidate.
func (c *Controller) Validate() bool {
	c.attempted = true
	ctx := c.validationContext()
	ok := c.username.Validate(ctx)
	ok = c.country.Validate(ctx) && ok
	ok = c.taxID.Validate(ctx) && ok
	return ok
}

// BeginSubmit moves through Validating. With a failing field it returns to
// Idle and ok is false; otherwise the form is Submitting and the payload is
// returned. It refuses while a submission is already pending.
func (c *Controller) BeginSubmit() (payload models.Submission, ok bool) {
	if c.status == StatusSubmitting {
		return models.Submission{}, false
	}

	c.status = StatusValidating
	if !c.Validate() {
		c.status = StatusIdle
		logger.Debug("Submission blocked by validation",
			"username_valid", c.username.IsValid(),
			"country_valid", c.country.IsValid(),
			"tax_id_valid", c.taxID.IsValid(),
		)
		return models.Submission{}, false
	}

	c.status = StatusSubmitting
	c.result = nil
	return c.Submission(), true
}

// FinishSubmit records the outcome of a pending submission. It is ignored
// when no submission is pending.
func (c *Controller) FinishSubmit(r models.SubmissionResult) {
	if c.status != StatusSubmitting {
		return
	}
	c.result = &r
	switch r.Kind {
	case models.ResultSuccess:
		c.status = StatusSuccess
	case models.ResultOffline:
		c.status = StatusOffline
	default:
		c.status = StatusError
	}
}

// Submit validates and, when valid, sends exactly one request through s.
// It reports whether a request was sent. A transport failure is recorded as
// an offline result, never returned.
func (c *Controller) Submit(ctx context.Context, s models.Submitter) bool {
	payload, ok := c.BeginSubmit()
	if !ok {
		return false
	}

	result, err := s.Submit(ctx, payload)
	if err != nil {
		logger.LogErr(err, "submission got no response")
		result = models.NewOfflineResult()
	}
	c.FinishSubmit(result)
	return true
}

// Submission returns the current field values as a payload.
func (c *Controller) Submission() models.Submission {
	return models.Submission{
		Username: c.username.Value,
		Country:  c.country.Value,
		TaxID:    c.taxID.Value,
	}
}

// Status returns the submission state.
func (c *Controller) Status() Status { return c.status }

// Result returns the last submission result, or nil.
func (c *Controller) Result() *models.SubmissionResult { return c.result }

// Picker exposes the country autocomplete.
func (c *Controller) Picker() *Autocomplete { return c.picker }

// Username returns the username field.
func (c *Controller) Username() Field { return c.username }

// Country returns the country field.
func (c *Controller) Country() Field { return c.country }

// TaxID returns the tax ID field.
func (c *Controller) TaxID() Field { return c.taxID }

// Snapshot captures the controller for the session store.
func (c *Controller) Snapshot() State {
	st := State{
		Username:  c.username.state(),
		Country:   c.country.state(),
		TaxID:     c.taxID.state(),
		Picker:    c.picker.State(),
		Status:    c.status,
		Attempted: c.attempted,
	}
	if c.result != nil {
		r := *c.result
		st.Result = &r
	}
	return st
}

// Restore replaces the controller state with st.
func (c *Controller) Restore(st State) {
	c.username.restore(st.Username)
	c.country.restore(st.Country)
	c.taxID.restore(st.TaxID)
	c.picker.Restore(st.Picker)
	c.status = st.Status
	if c.status == "" {
		c.status = StatusIdle
	}
	c.attempted = st.Attempted
	c.result = nil
	if st.Result != nil {
		r := *st.Result
		c.result = &r
	}
}

package form

import (
	"strconv"

	"taxform/models"

	"github.com/rohanthewiz/serr"
)

// Event types relayed from the page script.
const (
	EventInput  = "input"  // a field's text changed
	EventKey    = "key"    // a navigation key in the country input
	EventSelect = "select" // a suggestion was clicked
	EventClose  = "close"  // the country input lost focus
	EventSubmit = "submit" // the form was submitted
)

// Event is one UI interaction.
type Event struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	Key   string `json:"key,omitempty"`
	Index int    `json:"index,omitempty"`
}

// Apply mutates c according to e. Submit events are not handled here; they
// need a Submitter and go through SessionStore.Submit.
func (e Event) Apply(c *Controller) error {
	switch e.Type {
	case EventInput:
		switch e.Field {
		case models.FieldUsername:
			c.SetUsername(e.Value)
		case models.FieldCountry:
			c.TypeCountry(e.Value)
		case models.FieldTaxID:
			c.SetTaxID(e.Value)
		default:
			return serr.New("unknown field: " + e.Field)
		}
	case EventKey:
		switch Key(e.Key) {
		case KeyDown, KeyUp, KeyEnter, KeyEscape:
			c.CountryKey(Key(e.Key))
		default:
			return serr.New("unsupported key: " + e.Key)
		}
	case EventSelect:
		if !c.ClickSuggestion(e.Index) {
			return serr.New("no suggestion at index " + strconv.Itoa(e.Index))
		}
	case EventClose:
		c.CloseSuggestions()
	case EventSubmit:
		return serr.New("submit events need a submitter")
	default:
		return serr.New("unknown event type: " + e.Type)
	}
	return nil
}

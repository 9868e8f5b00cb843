package taxform

import (
	"html"

	"taxform/models"

	"github.com/rohanthewiz/element"
)

// Message is the area under the form that reports the submission outcome.
// It is always present so scripts and tests can find it.
type Message struct {
	Pending bool
	Result  *models.SubmissionResult
}

func (m Message) Render(b *element.Builder) (x any) {
	b.Div("class", m.class(), "data-testid", "message", "role", "status", "aria-live", "polite").R(
		b.Wrap(func() {
			switch {
			case m.Pending:
				b.Span("class", "message-text").T("Submitting...")
			case m.Result != nil:
				b.Span("class", "message-text").T(html.EscapeString(m.Result.Message))
			}
		}),
	)
	return
}

func (m Message) class() string {
	switch {
	case m.Pending:
		return "message message-pending"
	case m.Result == nil:
		return "message"
	case m.Result.Kind == models.ResultSuccess:
		return "message alert alert-success"
	case m.Result.Kind == models.ResultOffline:
		return "message alert alert-danger alert-offline"
	default:
		return "message alert alert-danger"
	}
}

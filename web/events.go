package web

import (
	"context"
	"encoding/json"
	"net/http"

	"taxform/form"
	"taxform/web/pages/taxform"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

type formHandlers struct {
	app *App
}

// page handles GET /
// Renders the session's form, so a reload keeps what was typed.
func (h formHandlers) page(ctx rweb.Context) error {
	v, err := h.app.Store.View(sessionID(ctx))
	if err != nil {
		logger.LogErr(err, "failed to load form session")
		ctx.SetStatus(http.StatusInternalServerError)
		return ctx.WriteHTML("<p>Something went wrong. Please reload the page.</p>")
	}

	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(taxform.NewPage(v).Render())
}

// event handles POST /form/events
// Applies one UI event and answers with the re-rendered form fragment.
// A rejected event answers 400 with the unchanged form.
func (h formHandlers) event(ctx rweb.Context) error {
	id := sessionID(ctx)

	var e form.Event
	if err := json.Unmarshal(ctx.Request().Body(), &e); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode form event"), "invalid JSON")
		return h.fragment(ctx, id, http.StatusBadRequest)
	}

	logger.Debug("Form event", "session_id", id, "type", e.Type, "field", e.Field, "key", e.Key)

	if e.Type == form.EventSubmit {
		return h.submit(ctx, id)
	}

	v, err := h.app.Store.Update(id, e.Apply)
	if err != nil {
		logger.LogErr(err, "form event rejected", "session_id", id, "type", e.Type)
		ctx.SetStatus(http.StatusBadRequest)
	}
	return writeFragment(ctx, v)
}

// submit blocks this request for the round trip only; other events for the
// same session keep being served meanwhile.
func (h formHandlers) submit(ctx rweb.Context, id string) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), h.app.Config.SubmitTimeout)
	defer cancel()

	v, sent, err := h.app.Store.Submit(reqCtx, id, h.app.Submitter)
	if err != nil {
		logger.LogErr(err, "submission failed", "session_id", id)
		return h.fragment(ctx, id, http.StatusInternalServerError)
	}
	if sent && v.Result != nil {
		logger.Info("Submission finished", "session_id", id, "kind", v.Result.Kind, "status", v.Result.StatusCode)
	}
	return writeFragment(ctx, v)
}

// limited answers a rate limited form event with the unchanged form, so
// the page keeps its content. Other routes get an empty 429.
func (h formHandlers) limited(ctx rweb.Context) error {
	if ctx.Request().Path() != "/form/events" {
		return nil
	}
	return h.fragment(ctx, sessionID(ctx), http.StatusTooManyRequests)
}

func (h formHandlers) fragment(ctx rweb.Context, id string, status int) error {
	v, err := h.app.Store.View(id)
	if err != nil {
		logger.LogErr(err, "failed to load form session", "session_id", id)
	}
	ctx.SetStatus(status)
	return writeFragment(ctx, v)
}

func writeFragment(ctx rweb.Context, v form.View) error {
	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(taxform.RenderForm(v))
}

// sessionID is set by SessionMiddleware.
func sessionID(ctx rweb.Context) string {
	id, _ := ctx.Get("session_id").(string)
	return id
}

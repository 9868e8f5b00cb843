package api

import (
	"encoding/json"
	"net/http"

	"taxform/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// Bodies returned by the receiving endpoint.
const (
	ReceivedBody = "Success!"
	RejectedBody = "Error!"
)

// ReceiveSubmission handles POST /api/v1/submissions
// This is the local receiving endpoint. It speaks the remote wire format
// ({status, body}) rather than the APIResponse envelope.
func ReceiveSubmission(ctx rweb.Context) error {
	var input models.Submission
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode submission"), "invalid JSON")
		return writeReceipt(ctx, http.StatusBadRequest, RejectedBody)
	}

	if err := models.ValidateSubmission(input); err != nil {
		logger.Info("Submission rejected", "country", input.Country, "reason", err.Error())
		return writeReceipt(ctx, http.StatusUnprocessableEntity, RejectedBody)
	}

	logger.Info("Submission received", "country", input.Country)
	return writeReceipt(ctx, http.StatusOK, ReceivedBody)
}

func writeReceipt(ctx rweb.Context, status int, body string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(models.SubmissionResponse{Status: status, Body: body})
}

package models

import "net/http"

// Field names as they appear in payloads, events and test hooks.
const (
	FieldUsername = "username"
	FieldCountry  = "country"
	FieldTaxID    = "taxId"
)

// Submission is the payload posted to the remote endpoint.
type Submission struct {
	Username string `json:"username" msgpack:"username"`
	Country  string `json:"country" msgpack:"country"`
	TaxID    string `json:"taxId" msgpack:"taxId"`
}

// SubmissionResponse is the JSON body the remote endpoint answers with.
// Status mirrors the HTTP status but only the transport status decides
// between success and error.
type SubmissionResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// ResultKind selects how a SubmissionResult is displayed.
type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultError   ResultKind = "error"
	// ResultOffline means no response arrived at all.
	ResultOffline ResultKind = "offline"
)

// SubmissionResult is the outcome of one round trip. It is replaced on the
// next submission.
type SubmissionResult struct {
	StatusCode int        `json:"statusCode" msgpack:"statusCode"`
	Message    string     `json:"message" msgpack:"message"`
	Kind       ResultKind `json:"kind" msgpack:"kind"`
}

// IsSuccess reports whether the result should be shown as a success.
func (r SubmissionResult) IsSuccess() bool {
	return r.Kind == ResultSuccess
}

// NewResponseResult classifies a received response by its transport status.
func NewResponseResult(statusCode int, message string) SubmissionResult {
	kind := ResultError
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		kind = ResultSuccess
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return SubmissionResult{StatusCode: statusCode, Message: message, Kind: kind}
}

// OfflineMessage is shown when a submission got no response.
const OfflineMessage = "The server could not be reached. Please try again."

// NewOfflineResult describes a submission that got no response.
func NewOfflineResult() SubmissionResult {
	return SubmissionResult{Message: OfflineMessage, Kind: ResultOffline}
}

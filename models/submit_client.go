package models

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Submission Client
//
// Posts one validated form to the remote endpoint and turns the answer into
// a SubmissionResult. Exactly one request per call: there is no retry, a
// failed round trip is reported to the caller and shown to the user.
// ============================================================================

// maxResponseBytes caps how much of a response body is read for display.
const maxResponseBytes = 64 << 10

// Submitter sends a submission and reports the outcome. err is non-nil only
// when no response was received.
type Submitter interface {
	Submit(ctx context.Context, s Submission) (SubmissionResult, error)
}

// SubmitClient is the HTTP Submitter.
type SubmitClient struct {
	url        string
	httpClient *http.Client
	sanitizer  *bluemonday.Policy
}

// NewSubmitClient builds a client for the endpoint in cfg.
func NewSubmitClient(cfg Config) *SubmitClient {
	return &SubmitClient{
		url: cfg.SubmitURL,
		httpClient: &http.Client{
			Timeout: cfg.SubmitTimeout,
		},
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// URL returns the endpoint submissions are posted to.
func (sc *SubmitClient) URL() string {
	return sc.url
}

// Submit posts s as JSON. Any received response, whatever its status,
// yields a result and a nil error.
func (sc *SubmitClient) Submit(ctx context.Context, s Submission) (SubmissionResult, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return SubmissionResult{}, serr.Wrap(err, "failed to marshal submission")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.url, bytes.NewReader(body))
	if err != nil {
		return SubmissionResult{}, serr.Wrap(err, "failed to create submission request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := sc.httpClient.Do(req)
	if err != nil {
		return SubmissionResult{}, serr.Wrap(err, "submission request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		// The status line arrived, so this is still a response
		logger.LogErr(serr.Wrap(err, "failed to read submission response"), "status", strconv.Itoa(resp.StatusCode))
	}

	result := NewResponseResult(resp.StatusCode, sc.displayMessage(raw))
	logger.Debug("Submission answered",
		"status", resp.StatusCode,
		"kind", string(result.Kind),
		"duration", time.Since(start),
	)
	return result, nil
}

// displayMessage extracts the text to show from a response body: the "body"
// field of the JSON envelope, else the raw text. Markup is stripped.
func (sc *SubmitClient) displayMessage(raw []byte) string {
	var envelope SubmissionResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Body != "" {
		return sc.sanitize(envelope.Body)
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "{") {
		// JSON without a usable body field; fall back to the status text
		return ""
	}
	return sc.sanitize(text)
}

// sanitize strips markup and returns plain text; renderers escape it again.
func (sc *SubmitClient) sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(sc.sanitizer.Sanitize(s)))
}

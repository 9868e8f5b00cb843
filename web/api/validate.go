package api

import (
	"encoding/json"
	"net/http"

	"taxform/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// Validity reports each field of a submission separately.
type Validity struct {
	Username bool `json:"username"`
	Country  bool `json:"country"`
	TaxID    bool `json:"taxId"`
	Valid    bool `json:"valid"`
	// TaxIDExample shows the expected shape for the given country.
	TaxIDExample string `json:"taxIdExample,omitempty"`
}

// CheckSubmission runs every field rule against s.
func CheckSubmission(s models.Submission) Validity {
	v := Validity{
		Username: models.ValidateUsername(s.Username),
		Country:  models.ValidateCountry(s.Country),
		TaxID:    models.ValidateTaxID(s.TaxID, s.Country),
	}
	v.Valid = v.Username && v.Country && v.TaxID

	if rule, ok := models.TaxIDRule(s.Country); ok {
		v.TaxIDExample = rule.Example
	}
	return v
}

// ValidateFields handles POST /api/v1/validate
func ValidateFields(ctx rweb.Context) error {
	var input models.Submission
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}

	return writeSuccess(ctx, http.StatusOK, CheckSubmission(input))
}

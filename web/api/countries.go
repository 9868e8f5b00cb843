package api

import (
	"net/http"
	"strings"

	"taxform/models"

	"github.com/rohanthewiz/rweb"
)

// ListCountries handles GET /api/v1/countries?q=
// Returns the countries containing q (case-insensitive), in list order.
// Without q the whole list is returned.
func ListCountries(ctx rweb.Context) error {
	q := strings.TrimSpace(ctx.Request().QueryParam("q"))

	matches := models.Countries()
	if q != "" {
		matches = models.FilterCountries(q)
	}
	if matches == nil {
		matches = []string{}
	}

	return writeSuccess(ctx, http.StatusOK, matches)
}

package api

import (
	"net/http"
	"time"

	"github.com/rohanthewiz/rweb"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Uptime   string `json:"uptime"`
}

// Health returns a liveness handler. sessions reports the live form count.
func Health(started time.Time, sessions func() int) rweb.Handler {
	return func(ctx rweb.Context) error {
		return writeSuccess(ctx, http.StatusOK, HealthStatus{
			Status:   "ok",
			Sessions: sessions(),
			Uptime:   time.Since(started).Round(time.Second).String(),
		})
	}
}

package web

import (
	"time"

	"taxform/form"
	"taxform/models"
)

// App bundles what the handlers need.
type App struct {
	Config    models.Config
	Store     *form.SessionStore
	Submitter models.Submitter
	Started   time.Time
}

// NewApp wires the session store and the submission client from cfg.
func NewApp(cfg models.Config) *App {
	return &App{
		Config:    cfg,
		Store:     form.NewSessionStore(cfg.SessionTTL, models.Countries()),
		Submitter: models.NewSubmitClient(cfg),
		Started:   time.Now(),
	}
}

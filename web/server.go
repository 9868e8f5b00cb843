package web

import (
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// NewServer creates and configures the RWeb server
func NewServer(app *App) *rweb.Server {
	return newServer(app, rweb.ServerOptions{
		Address: app.Config.Address,
		Verbose: app.Config.LogLevel == "debug",
	})
}

// NewTestServer builds the same server with caller-supplied options, so
// tests can bind a dynamic port and wait on ReadyChan.
func NewTestServer(app *App, opts rweb.ServerOptions) *rweb.Server {
	return newServer(app, opts)
}

func newServer(app *App, opts rweb.ServerOptions) *rweb.Server {
	s := rweb.NewServer(opts)

	s.Use(rweb.RequestInfo)
	s.Use(CorsMiddleware)
	s.Use(SessionMiddleware)
	s.Use(SecurityHeadersMiddleware)
	s.Use(LoggingMiddleware)
	if app.Config.RateLimit > 0 {
		s.Use(RateLimitMiddleware(app.Config.RateLimit, formHandlers{app}.limited))
	}

	setupRoutes(s, app)
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, app *App) error {
	logger.Info("Tax form server starting",
		"address", app.Config.Address,
		"submit_url", app.Config.SubmitURL,
	)
	return s.Run()
}

package web

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// Embed static directory files
//
//go:embed all:static
var staticFiles embed.FS

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64"><rect width="64" height="64" rx="8" fill="#2f6f9f"/><rect x="14" y="12" width="36" height="40" rx="3" fill="white"/><rect x="20" y="20" width="24" height="4" rx="2" fill="#2f6f9f"/><rect x="20" y="29" width="18" height="4" rx="2" fill="#2f6f9f"/><rect x="20" y="38" width="21" height="4" rx="2" fill="#2f6f9f"/></svg>`

// SetupStaticFiles configures static file serving using embedded files
func SetupStaticFiles(s *rweb.Server) {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(err, "failed to get static subdirectory")
		return
	}

	s.Get("/favicon.ico", func(c rweb.Context) error {
		c.Response().SetHeader("Content-Type", "image/svg+xml")
		c.Response().SetHeader("Cache-Control", "public, max-age=86400")
		return c.Bytes([]byte(faviconSVG))
	})

	s.Get("/static/*", func(c rweb.Context) error {
		return serveStatic(c, staticFS, strings.TrimPrefix(c.Request().Path(), "/static/"))
	})
}

func serveStatic(c rweb.Context, staticFS fs.FS, name string) error {
	file, err := staticFS.Open(path.Clean(name))
	if err != nil {
		c.SetStatus(http.StatusNotFound)
		return nil
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		c.SetStatus(http.StatusInternalServerError)
		return nil
	}
	if stat.IsDir() {
		c.SetStatus(http.StatusNotFound)
		return nil
	}

	if contentType := getContentType(name); contentType != "" {
		c.Response().SetHeader("Content-Type", contentType)
	}
	// Asset URLs carry a ?v= version, so a short max-age is enough
	c.Response().SetHeader("Cache-Control", "public, max-age=3600")

	content, err := io.ReadAll(file)
	if err != nil {
		c.SetStatus(http.StatusInternalServerError)
		return nil
	}
	return c.Bytes(content)
}

// getContentType returns the content type based on file extension
func getContentType(name string) string {
	switch path.Ext(name) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	default:
		return ""
	}
}

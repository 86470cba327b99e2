// Package web embeds the dashboard templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

// Templates parses every page and partial with funcs available.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templates, "templates/*.html")
}

// Static serves css, js and icons under /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// ServiceWorker is the worker script served from the site root so its scope
// covers every page.
func ServiceWorker() ([]byte, error) {
	return static.ReadFile("static/service-worker.js")
}

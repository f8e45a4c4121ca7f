// Package web holds the server-rendered page templates, embedded so the
// binary and the tests work from any directory.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every embedded page template. Templates are addressed by
// file name, e.g. "blog_post.html".
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}

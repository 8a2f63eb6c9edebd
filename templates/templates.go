// Package templates embeds the marketing site's HTML templates so the
// same renderer works from the binary and from package tests.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses the embedded templates, keyed by file name
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "*.html"))
}

// Package web embeds the browser page and the API description.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed openapi.json
var OpenAPI []byte

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Templates parses the embedded page templates. It panics on a malformed
// template since they are compiled into the binary.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

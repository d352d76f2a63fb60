// Package web holds the dashboard's HTML templates.
package web

import "embed"

//go:embed templates/*.html
var TemplateFiles embed.FS

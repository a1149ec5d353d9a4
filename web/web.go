// Package web holds embedded static assets and templates.
package web

import "embed"

//go:embed templates
var Templates embed.FS

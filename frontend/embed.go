// Package frontend embeds the built single-page UI.
package frontend

import "embed"

//go:embed all:dist
var StaticFiles embed.FS

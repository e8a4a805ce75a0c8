// Package web serves a small HTML chat page and a JSON API over HTTP.
// Binds to localhost only: no network exposure, no auth needed.
package web

import "embed"

//go:embed static/index.html
var staticFS embed.FS

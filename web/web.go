// Package web serves the embedded widget page. The chat widget itself is an
// external web component loaded from a CDN; this page only hosts it and
// points it at the local API.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

func Handler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

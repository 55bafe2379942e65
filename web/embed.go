// Package web embeds the dashboard landing page for serving from the Go
// binary.
//
// The web/static/ directory is embedded at compile-time using go:embed.
//
// Usage in the API server:
//
//	import "github.com/graficos-io/graficos/web"
//	fs := web.StaticFS()  // returns io/fs.FS rooted at static/
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed all:static
var static embed.FS

// StaticFS returns a filesystem rooted at the embedded static/ directory.
// This is ready to use with http.FileServerFS or http.FS.
func StaticFS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		log.Fatalf("web.StaticFS: %v", err)
	}
	return sub
}

// IndexHTML returns the landing page bytes.
func IndexHTML() ([]byte, error) {
	return static.ReadFile("static/index.html")
}

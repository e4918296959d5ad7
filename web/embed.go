// Package web holds the HTML shells and browser assets compiled into the binary.
package web

import "embed"

// Templates holds layouts, pages and partials rendered by internal/view.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static holds the stylesheet and the action script served under /static.
//
//go:embed static/**/*
var Static embed.FS

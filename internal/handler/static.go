// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers outside the JSON API, currently
// static file serving for the site bundle and uploaded images.
package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPA returns a handler serving a prebuilt single-page bundle from dir.
// Requests for paths that do not map to a file fall back to index.html so
// client-side routes resolve after a full page load.
func SPA(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
		if clean == "." || strings.HasPrefix(clean, "..") {
			clean = "index.html"
		}

		if _, err := os.Stat(filepath.Join(dir, clean)); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})
}

// Uploads returns a handler serving processed gallery images from dir,
// mounted under the /uploads/ prefix. Directory listings are refused.
func Uploads(dir string) http.Handler {
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

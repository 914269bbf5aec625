// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
)

// StripTrailingSlash canonicalizes request paths: "/admin/students/"
// redirects to "/admin/students" with the query string intact. GET and
// HEAD get a 301; other methods get a 308 so the method and body survive
// the redirect. The root path passes through untouched.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if len(p) <= 1 || !strings.HasSuffix(p, "/") {
			next.ServeHTTP(w, r)
			return
		}

		u := *r.URL
		u.Path = strings.TrimRight(p, "/")

		code := http.StatusMovedPermanently
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			code = http.StatusPermanentRedirect
		}
		http.Redirect(w, r, u.String(), code)
	})
}

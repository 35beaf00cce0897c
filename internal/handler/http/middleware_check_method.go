// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler. Requests
// using a method that no route accepts for the path get 404 instead of
// chi's default 405, so unsupported methods do not reveal which paths
// exist.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}
}

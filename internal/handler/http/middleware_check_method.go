// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/gig-sync/internal/app"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A path that exists under another method is answered with 404 instead of
// chi's 405, so unsupported methods do not reveal routes.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}

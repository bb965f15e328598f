package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/ping", h.ping)
	})

	// document API
	router.Group(func(r chi.Router) {
		r.Use(h.withBodySignature, h.auth)

		r.Post("/api/documents/{collection}", h.insertDocument)
		r.Post("/api/documents/{collection}/query", h.queryDocuments)
		r.Patch("/api/documents/{collection}/{id}", h.updateDocument)
		r.Delete("/api/documents/{collection}/{id}", h.deleteDocument)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

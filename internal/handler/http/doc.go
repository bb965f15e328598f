// Package http implements the REST transport of the document server.
//
// It exposes route wiring, request handlers, and middleware used by the
// document API. Cross-cutting concerns such as authentication, request
// tracing, access logging, response compression, and body signatures are
// handled in this package before requests are delegated to the service layer.
package http

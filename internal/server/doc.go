// Package server runs the document server's transports.
//
// It starts the HTTP and gRPC listeners that are configured, stops them
// gracefully when the run context is cancelled, and reports the first
// transport failure.
package server

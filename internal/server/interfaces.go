package server

import "context"

// Server is a transport with a blocking lifecycle.
type Server interface {
	// RunServer serves until ctx is cancelled or the transport fails. A
	// graceful stop returns nil.
	RunServer(ctx context.Context) error
}

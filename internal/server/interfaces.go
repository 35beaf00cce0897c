package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer serves requests until ctx is cancelled or a transport fails,
	// then shuts every transport down.
	RunServer(ctx context.Context)

	// Shutdown gracefully stops the servers and frees associated resources.
	Shutdown()
}

// Package delivery defines the contract every transport-facing server implements.
package delivery

import "context"

// Delivery is a long-running server started by the application entrypoint.
type Delivery interface {
	// Serve blocks, serving requests until the server is shut down.
	Serve(ctx context.Context) error
}

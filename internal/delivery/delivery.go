// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a transport endpoint that serves until its lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}

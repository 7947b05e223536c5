package transports

import (
	"context"

	"github.com/rzbill/flake/pkg/id"
)

// IDsTransport abstracts the transport used by the CLI (gRPC/HTTP).
type IDsTransport interface {
	// Next fetches count ids from a running server, in issue order.
	Next(ctx context.Context, count int) ([]id.ID, error)
}

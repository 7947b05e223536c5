// Package transports provides pluggable transport implementations for the CLI.
package transports

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	flakev1 "github.com/rzbill/flake/api/flake/v1"
	"github.com/rzbill/flake/pkg/id"
)

// GrpcTransport implements IDsTransport over gRPC.
type GrpcTransport struct {
	dial func(ctx context.Context) (*grpc.ClientConn, error)
}

// NewGrpcTransport constructs a new GrpcTransport using the provided dialer.
func NewGrpcTransport(dial func(ctx context.Context) (*grpc.ClientConn, error)) *GrpcTransport {
	return &GrpcTransport{dial: dial}
}

func (t *GrpcTransport) withClient(ctx context.Context, fn func(cli flakev1.IDServiceClient) error) error {
	conn, err := t.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(flakev1.NewIDServiceClient(conn))
}

// Next uses NextId for a single id and NextIds for batches.
func (t *GrpcTransport) Next(ctx context.Context, count int) ([]id.ID, error) {
	var out []id.ID
	err := t.withClient(ctx, func(cli flakev1.IDServiceClient) error {
		if count <= 1 {
			v, err := cli.NextID(ctx, &emptypb.Empty{})
			if err != nil {
				return err
			}
			out = []id.ID{id.ID(v.GetValue())}
			return nil
		}
		resp, err := cli.NextIDs(ctx, wrapperspb.UInt32(uint32(count)))
		if err != nil {
			return err
		}
		out = make([]id.ID, 0, len(resp.GetValues()))
		for _, v := range resp.GetValues() {
			parsed, err := id.ParseID(v.GetStringValue())
			if err != nil {
				return fmt.Errorf("bad id in response: %w", err)
			}
			out = append(out, parsed)
		}
		return nil
	})
	return out, err
}

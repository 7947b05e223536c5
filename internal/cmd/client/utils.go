package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	transports "github.com/rzbill/flake/internal/cmd/client/transports"
)

// grpcAddrFromEnv returns the gRPC server address from FLAKE_GRPC or a default.
func grpcAddrFromEnv() string {
	if addr := os.Getenv("FLAKE_GRPC"); addr != "" {
		return addr
	}
	return "127.0.0.1:50051"
}

// dialGRPCContext creates a client for the flake gRPC endpoint with insecure
// transport for local/dev. The connection is established lazily on first use.
func dialGRPCContext(_ context.Context) (*grpc.ClientConn, error) {
	return grpc.NewClient(grpcAddrFromEnv(), grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// getTransport selects the CLI transport by name.
func getTransport(name string, baseURL BaseURLFunc) (transports.IDsTransport, error) {
	switch name {
	case "http", "":
		return transports.NewHTTPTransport(baseURL, nil), nil
	case "grpc":
		return transports.NewGrpcTransport(dialGRPCContext), nil
	default:
		return nil, fmt.Errorf("invalid --transport %q; use http|grpc", name)
	}
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

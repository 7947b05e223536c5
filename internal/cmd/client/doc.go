// Package client provides the `flake` command-line client.
//
// The CLI talks to the flake HTTP and gRPC endpoints to fetch ids from a
// running server, and decodes ids offline.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary it reads
// FLAKE_HTTP and defaults to http://127.0.0.1:8080. The gRPC address is read
// from the FLAKE_GRPC environment variable (default 127.0.0.1:50051).
//
// Usage
//
//	flake id next
//	flake id next --count 10 --transport grpc
//	flake id decode 1541815603606036480
//	flake id decode 4194439168 --epoch-ms 0
//	flake node
//
// Notes
//
//   - next prints one decimal id per line, in issue order.
//   - decode needs the epoch of the issuing node when it is not the default.
//   - node runs the host resolver locally; it does not contact a server.
package client

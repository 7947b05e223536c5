// Package grpcserver hosts the gRPC server for flake. It registers the
// flake.v1.IdService and the standard grpc.health.v1 service and delegates
// to the shared ids service.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{Config: config.Default()})
//	s := grpcserver.New(rt, logger)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":50051")
package grpcserver

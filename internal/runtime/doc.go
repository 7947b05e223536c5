// Package runtime wires config, logging and the id generator into a
// single flake instance. It exposes Open/Close, basic health checks, and
// the generator shared by the HTTP and gRPC transports.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{Config: cfg, Logger: logger})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	next, _ := rt.Generator().NextID()
package runtime

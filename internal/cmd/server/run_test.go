package serverrun

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/rzbill/flake/internal/config"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

func testConfig() cfgpkg.Config {
	cfg := cfgpkg.Default()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.GRPCAddr = "127.0.0.1:0"
	return cfg
}

func quietLogger() logpkg.Logger {
	return logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
}

func TestBuildLogger(t *testing.T) {
	l := buildLogger(cfgpkg.LogConfig{Level: "warn", Format: "json"})
	assert.Equal(t, logpkg.WarnLevel, l.GetLevel())
}

func TestBuildLoggerFallback(t *testing.T) {
	l := buildLogger(cfgpkg.LogConfig{Level: "debug", Format: "xml"})
	require.NotNil(t, l)
	assert.Equal(t, logpkg.DebugLevel, l.GetLevel())

	l = buildLogger(cfgpkg.LogConfig{Level: "loud", Format: "text"})
	assert.Equal(t, logpkg.InfoLevel, l.GetLevel())
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	bad := int64(32)
	cfg.Node.WorkerID = &bad

	err := Run(context.Background(), Options{Config: cfg, Logger: quietLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node.workerId")
}

func TestRunFailsWhenPortTaken(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := testConfig()
	cfg.HTTPAddr = l.Addr().String()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = Run(ctx, Options{
		Config:   cfg,
		Logger:   quietLogger(),
		Resolver: id.StaticResolver{Datacenter: 1, Worker: 1},
	})
	require.Error(t, err)
	assert.NoError(t, ctx.Err(), "Run should return on listen failure, not on timeout")
}

// TestRunIntegration verifies Run starts both servers and returns cleanly
// once its context is cancelled.
func TestRunIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := Run(ctx, Options{
		Config:   testConfig(),
		Logger:   quietLogger(),
		Resolver: id.StaticResolver{Datacenter: 2, Worker: 7},
	})
	assert.NoError(t, err)
}

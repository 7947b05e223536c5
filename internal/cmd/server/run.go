package serverrun

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	cfgpkg "github.com/rzbill/flake/internal/config"
	"github.com/rzbill/flake/internal/runtime"
	grpcserver "github.com/rzbill/flake/internal/server/grpc"
	httpserver "github.com/rzbill/flake/internal/server/http"
	idsvc "github.com/rzbill/flake/internal/services/ids"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

type Options struct {
	Config cfgpkg.Config
	// Logger overrides the logger built from Config.Log.
	Logger logpkg.Logger
	// Resolver overrides host-derived node coordinates (tests).
	Resolver id.Resolver
}

// Run starts gRPC and HTTP servers and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	procLogger := opts.Logger
	if procLogger == nil {
		procLogger = buildLogger(opts.Config.Log)
	}
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{
		Config:   opts.Config,
		Logger:   procLogger,
		Resolver: opts.Resolver,
	})
	if err != nil {
		procLogger.Error("cannot start id generator", logpkg.Err(err))
		return err
	}
	defer rt.Close()

	gen := rt.Generator()
	procLogger.Info("Starting flake server",
		logpkg.Str("grpc", opts.Config.GRPCAddr),
		logpkg.Str("http", opts.Config.HTTPAddr),
		logpkg.Int64("worker_id", gen.WorkerID()),
		logpkg.Int64("datacenter_id", gen.DatacenterID()),
		logpkg.Int64("epoch_ms", gen.Epoch()),
		logpkg.Str("level", opts.Config.Log.Level),
		logpkg.Str("format", opts.Config.Log.Format),
	)

	// one service, one generator, shared by both transports
	svc := idsvc.NewWithLogger(rt, procLogger.With(logpkg.Component("ids")))
	gsrv := grpcserver.NewWithService(rt, svc, procLogger)
	hsrv := httpserver.NewWithService(rt, svc, procLogger)

	errCh := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := gsrv.ListenAndServe(sctx, opts.Config.GRPCAddr); err != nil && sctx.Err() == nil {
			procLogger.Error("grpc server failed", logpkg.Err(err))
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.Config.HTTPAddr); err != nil && sctx.Err() == nil {
			procLogger.Error("http server failed", logpkg.Err(err))
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-sctx.Done():
	case runErr = <-errCh:
		stop()
	}
	gsrv.Close()
	hsrv.Close()
	wg.Wait()
	procLogger.Info("flake server stopped")
	return runErr
}

// buildLogger applies cfg and falls back to a text logger at the parsed
// level when the configuration is rejected.
func buildLogger(cfg cfgpkg.LogConfig) logpkg.Logger {
	lc := &logpkg.Config{Level: cfg.Level, Format: cfg.Format}
	l, err := logpkg.ApplyConfig(lc)
	if err == nil {
		return l
	}
	lvl := logpkg.InfoLevel
	if parsed, e := logpkg.ParseLevel(cfg.Level); e == nil {
		lvl = parsed
	}
	l = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}))
	l.Warn("invalid log config; using text output", logpkg.Err(err))
	return l
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	clientcmd "github.com/rzbill/flake/internal/cmd/client"
	serverrun "github.com/rzbill/flake/internal/cmd/server"
	cfgpkg "github.com/rzbill/flake/internal/config"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:   "flake",
		Short: "flake id generator",
		Long:  "flake issues time-ordered 64-bit ids. This CLI runs the server and talks to it.",
	}

	rootCmd.AddCommand(newServerCommand())
	rootCmd.AddCommand(clientcmd.NewIDCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewNodeCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServerCommand() *cobra.Command {
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start flake server (gRPC and HTTP)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := serverrun.Run(ctx, serverrun.Options{Config: cfg}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	f := serverStartCmd.Flags()
	f.String("config", "", "Config file (yaml|json|toml); defaults to flake.* in the OS config directory")
	f.String("grpc", "", "gRPC listen address (default :50051)")
	f.String("http", "", "HTTP listen address (default :8080)")
	f.Int64("worker-id", -1, "Worker id in [0,31]; derived from the host when unset")
	f.Int64("datacenter-id", -1, "Datacenter id in [0,31]; derived from the host when unset")
	f.Int64("epoch-ms", 0, "Custom epoch in unix milliseconds (default 1288834974657)")
	f.Int("max-batch", 0, "Largest count accepted by a single request (default 1000)")
	f.String("log-level", "", "Log level: debug|info|warn|error")
	f.String("log-format", "", "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	return serverCmd
}

// loadConfig layers defaults, the config file, FLAKE_* variables and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	if path == "" {
		path = cfgpkg.FindConfigFile(cfgpkg.DefaultConfigDir())
	}
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	cfgpkg.FromEnv(&cfg)

	if f.Changed("grpc") {
		cfg.GRPCAddr, _ = f.GetString("grpc")
	}
	if f.Changed("http") {
		cfg.HTTPAddr, _ = f.GetString("http")
	}
	if f.Changed("worker-id") {
		v, _ := f.GetInt64("worker-id")
		cfg.Node.WorkerID = &v
	}
	if f.Changed("datacenter-id") {
		v, _ := f.GetInt64("datacenter-id")
		cfg.Node.DatacenterID = &v
	}
	if f.Changed("epoch-ms") {
		cfg.EpochMs, _ = f.GetInt64("epoch-ms")
	}
	if f.Changed("max-batch") {
		cfg.MaxBatch, _ = f.GetInt("max-batch")
	}
	if f.Changed("log-level") {
		cfg.Log.Level, _ = f.GetString("log-level")
	}
	if f.Changed("log-format") {
		cfg.Log.Format, _ = f.GetString("log-format")
	}
	return cfg, nil
}

func apiURL() string {
	if v := os.Getenv("FLAKE_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}

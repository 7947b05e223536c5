package config

import (
	"os"
	"strconv"
)

// FromEnv overlays FLAKE_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("FLAKE_WORKER_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Node.WorkerID = &n
		}
	}
	if v := os.Getenv("FLAKE_DATACENTER_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Node.DatacenterID = &n
		}
	}
	if v := os.Getenv("FLAKE_EPOCH_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.EpochMs = n
		}
	}
	if v := os.Getenv("FLAKE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("FLAKE_GRPC_ADDR"); v != "" {
		cfg.GRPCAddr = v
	}
	if v := os.Getenv("FLAKE_MAX_BATCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxBatch = n
		}
	}
	if v := os.Getenv("FLAKE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FLAKE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

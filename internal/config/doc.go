// Package config provides loading and environment overlay for the flake
// server configuration. It exposes a Default() baseline, file loading via
// viper, and a FLAKE_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file and overlay env vars
//	if fileCfg, err := config.Load("/etc/flake/flake.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil { ... }
//	rt, _ := runtime.Open(runtime.Options{Config: cfg, Logger: logger})
//
// Leaving node.workerId and node.datacenterId unset derives them from the
// host. Two processes that end up with the same pair issue colliding ids;
// pin the coordinates explicitly in any multi-process deployment.
package config

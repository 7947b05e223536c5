package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/rzbill/flake/pkg/id"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Node     NodeConfig `mapstructure:"node"`
	EpochMs  int64      `mapstructure:"epochMs"`
	HTTPAddr string     `mapstructure:"httpAddr"`
	GRPCAddr string     `mapstructure:"grpcAddr"`
	MaxBatch int        `mapstructure:"maxBatch"`
	Log      LogConfig  `mapstructure:"log"`
}

// NodeConfig pins node coordinates. A nil field is derived from the host.
type NodeConfig struct {
	WorkerID     *int64 `mapstructure:"workerId"`
	DatacenterID *int64 `mapstructure:"datacenterId"`
}

// LogConfig selects the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		EpochMs:  id.DefaultEpochMs,
		HTTPAddr: ":8080",
		GRPCAddr: ":50051",
		MaxBatch: 1000,
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a YAML, JSON or TOML file (by extension)
// on top of the defaults. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetDefault("epochMs", cfg.EpochMs)
	v.SetDefault("httpAddr", cfg.HTTPAddr)
	v.SetDefault("grpcAddr", cfg.GRPCAddr)
	v.SetDefault("maxBatch", cfg.MaxBatch)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise fail later at generator
// construction, so misconfiguration is reported before anything starts.
func (c Config) Validate() error {
	var errs []error
	if w := c.Node.WorkerID; w != nil && (*w < 0 || *w > id.MaxWorkerID) {
		errs = append(errs, fmt.Errorf("node.workerId %d out of range [0, %d]", *w, id.MaxWorkerID))
	}
	if d := c.Node.DatacenterID; d != nil && (*d < 0 || *d > id.MaxDatacenterID) {
		errs = append(errs, fmt.Errorf("node.datacenterId %d out of range [0, %d]", *d, id.MaxDatacenterID))
	}
	if c.EpochMs < 0 {
		errs = append(errs, fmt.Errorf("epochMs %d must not be negative", c.EpochMs))
	}
	if c.MaxBatch <= 0 {
		errs = append(errs, fmt.Errorf("maxBatch %d must be positive", c.MaxBatch))
	}
	return errors.Join(errs...)
}

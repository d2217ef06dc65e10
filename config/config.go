// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/corelog"
	"gitlab.com/jaxnet/nipopow/node/chainstore"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFilename = "nipopow.yaml"

	defaultDataDirname  = "data"
	defaultLogLevel     = "info"
	defaultNet          = string(chaincfg.NetRegtest)
	defaultDBType       = chainstore.DriverLevelDB
	defaultMetricsAddr  = ":2112"
	defaultMaxAttempts  = 1 << 32
	defaultWorkersLimit = 4
)

// ProofConfig holds the security parameters of the built proofs.
type ProofConfig struct {
	M int `yaml:"m"`
	K int `yaml:"k"`
}

// MinerConfig tunes the CPU oracle.
type MinerConfig struct {
	Workers     int    `yaml:"workers"`
	MaxAttempts uint64 `yaml:"max_attempts"`
}

// MetricsConfig enables the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Config defines the configuration options for the tools.
type Config struct {
	Net      string         `yaml:"net"`
	DataDir  string         `yaml:"data_dir"`
	DBType   string         `yaml:"db_type"`
	Proof    ProofConfig    `yaml:"proof"`
	Miner    MinerConfig    `yaml:"miner"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      corelog.Config `yaml:"log"`
	LogLevel string         `yaml:"log_level"`
}

// Default returns the configuration with all defaults applied.
func Default() Config {
	workers := runtime.NumCPU()
	if workers > defaultWorkersLimit {
		workers = defaultWorkersLimit
	}

	return Config{
		Net:     defaultNet,
		DataDir: defaultDataDirname,
		DBType:  defaultDBType,
		Proof: ProofConfig{
			M: chaincfg.DefaultProofM,
			K: chaincfg.DefaultProofK,
		},
		Miner: MinerConfig{
			Workers:     workers,
			MaxAttempts: defaultMaxAttempts,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    defaultMetricsAddr,
		},
		Log:      corelog.Config{}.Default(),
		LogLevel: defaultLogLevel,
	}
}

// Load reads the yaml file over the defaults. A missing file is not an error,
// the defaults are returned as is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "unable to read config %s", path)
	}

	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "unable to decode config %s", path)
	}

	return cfg, cfg.Validate()
}

// Save writes the configuration as yaml.
func (cfg Config) Save(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "unable to encode config")
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values are usable.
func (cfg Config) Validate() error {
	if chaincfg.NetName(cfg.Net).Params() == nil {
		return errors.Errorf("unknown net %q", cfg.Net)
	}

	known := false
	for _, driver := range chainstore.SupportedDrivers() {
		known = known || driver == cfg.DBType
	}
	if !known {
		return errors.Errorf("unknown db_type %q, supported: %v", cfg.DBType, chainstore.SupportedDrivers())
	}

	if cfg.Proof.M < 1 {
		return errors.Errorf("proof.m must be at least 1, got %d", cfg.Proof.M)
	}
	if cfg.Proof.K < 0 {
		return errors.Errorf("proof.k must not be negative, got %d", cfg.Proof.K)
	}
	if cfg.Miner.Workers < 1 {
		return errors.Errorf("miner.workers must be at least 1, got %d", cfg.Miner.Workers)
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	return nil
}

// NetParams returns the parameters of the configured network with the
// proof parameters taken from the configuration.
func (cfg Config) NetParams() *chaincfg.Params {
	params := chaincfg.NetName(cfg.Net).Params()
	if params == nil {
		return nil
	}

	params.ProofParams = chaincfg.ProofParams{M: cfg.Proof.M, K: cfg.Proof.K}
	return params
}

// DBPath is the location of the chain store: <data_dir>/<net>/<db_type>.
func (cfg Config) DBPath() string {
	return filepath.Join(cfg.DataDir, cfg.Net, cfg.DBType)
}

// OpenStore opens the configured chain store.
func (cfg Config) OpenStore() (chainstore.Store, error) {
	params := cfg.NetParams()
	if params == nil {
		return nil, errors.Errorf("unknown net %q", cfg.Net)
	}

	if cfg.DBType != chainstore.DriverMemory {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath()), 0700); err != nil {
			return nil, errors.Wrap(err, "unable to create data dir")
		}
	}
	return chainstore.Open(cfg.DBType, cfg.DBPath(), params.Net)
}

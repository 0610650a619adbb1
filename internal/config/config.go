package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"doc_auditor/internal/audit"
)

// Config is the process-level configuration surface. The core consumes it
// but does not own it: every external capability stays optional, and an
// absent oracle credential must never stop an audit.
type Config struct {
	Oracle OracleConfig `yaml:"oracle"`
	Store  StoreConfig  `yaml:"store"`
	Audit  AuditConfig  `yaml:"audit"`
	Server ServerConfig `yaml:"server"`
}

type OracleConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type AuditConfig struct {
	WindowSize    int           `yaml:"window_size"`
	Workers       int           `yaml:"workers"`
	MaxChunkRunes int           `yaml:"max_chunk_runes"`
	Weights       audit.Weights `yaml:"weights"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func Default() Config {
	return Config{
		Oracle: OracleConfig{
			Model:          "qwen-max",
			TimeoutSeconds: 60,
		},
		Audit: AuditConfig{
			WindowSize:    3,
			Workers:       4,
			MaxChunkRunes: 2000,
			Weights:       audit.DefaultWeights(),
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8123,
		},
	}
}

// Load reads a YAML config file on top of the defaults, then applies
// environment overrides. An empty path means defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DASHSCOPE_API_KEY"); v != "" {
		cfg.Oracle.APIKey = v
	}
	if v := os.Getenv("AUDITOR_MODEL"); v != "" {
		cfg.Oracle.Model = v
	}
	if v := os.Getenv("AUDITOR_ORACLE_ENDPOINT"); v != "" {
		cfg.Oracle.Endpoint = v
	}
	if v := os.Getenv("AUDITOR_STORE"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("AUDITOR_WINDOW_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Audit.WindowSize = n
		}
	}
}

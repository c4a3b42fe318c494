package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Provider struct {
	BaseURL               string `json:"base_url"`
	MaxSymbolsPerRequest  int    `json:"max_symbols_per_request"`
	MaxConcurrency        int    `json:"max_concurrency"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
	Burst                 int    `json:"burst"`
	CacheTTLSeconds       int    `json:"cache_ttl_sec"`
	CacheMaxItems         int    `json:"cache_max_items"`
}

type Config struct {
	Server   Server   `json:"server"`
	Provider Provider `json:"provider"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 30},
		Provider: Provider{
			MaxSymbolsPerRequest: 200,
			MaxConcurrency:       2,
			MaxRequestsPerMinute: 60,
			Burst:                5,
			CacheTTLSeconds:      300,
			CacheMaxItems:        10000,
		},
	}
}

// Load reads JSON config from path. If path is empty or the file does
// not exist, it returns defaults. A .env file, when present, is folded
// into the environment first; environment variables override select
// fields afterwards.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("PROVIDER_MAX_SYMBOLS_PER_REQUEST"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Provider.MaxSymbolsPerRequest = x
		}
	}
	if v := os.Getenv("PROVIDER_MAX_CONCURRENCY"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Provider.MaxConcurrency = x
		}
	}
	if v := os.Getenv("PROVIDER_MAX_RPM"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Provider.MaxRequestsPerMinute = x
		}
	}
	if v := os.Getenv("PROVIDER_MIN_INTERVAL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Provider.MinRequestIntervalSec = x
		}
	}
	if v := os.Getenv("PROVIDER_BURST"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Provider.Burst = x
		}
	}
	if v := os.Getenv("PROVIDER_CACHE_TTL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Provider.CacheTTLSeconds = x
		}
	}
	if v := os.Getenv("PROVIDER_CACHE_MAX_ITEMS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Provider.CacheMaxItems = x
		}
	}
}

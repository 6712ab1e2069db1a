package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"ledgerline/internal/client"
)

// cliConfig is the ledgerctl configuration file.
//
//	api_url  = "http://localhost:8080"
//	api_key  = "..."
//	timeout  = "30s"
//	currency = "USD"
type cliConfig struct {
	APIURL   string `toml:"api_url"`
	APIKey   string `toml:"api_key"`
	Timeout  string `toml:"timeout"`
	Currency string `toml:"currency"`

	timeout time.Duration
}

func defaultConfig() cliConfig {
	return cliConfig{
		APIURL:   "http://localhost:8080",
		Timeout:  "30s",
		Currency: "USD",
	}
}

// loadConfig reads path when it is set, then applies environment overrides.
func loadConfig(path string) (*cliConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
		}
	}

	if v := os.Getenv("LEDGERLINE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("PIPELINE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LEDGERLINE_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}

	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
	}
	if d <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", d)
	}
	cfg.timeout = d
	cfg.Currency = strings.ToUpper(cfg.Currency)
	return &cfg, nil
}

// apiClient builds a pipeline client. The API key is only needed for calls
// that reach the server.
func (c *cliConfig) apiClient() (*client.Client, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("api_key is not configured (set it in the config file or PIPELINE_API_KEY)")
	}
	return client.New(c.APIURL, c.APIKey, &http.Client{Timeout: c.timeout}), nil
}

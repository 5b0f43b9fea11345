package config

import (
	"encoding/json"
	"os"
)

// Page identifies the active view
type Page int

const (
	PageLaunchpad Page = iota
	PageNamespace
	PageNetworks
)

// Config represents the application configuration
type Config struct {
	BridgeURL string    `json:"bridge_url"`
	ChainID   uint64    `json:"chain_id"`
	RPCURLs   []RPCUrl  `json:"rpc_urls"`
	Factories []Factory `json:"factories"`
	Logger    bool      `json:"logger"`
}

// RPCUrl represents a read-only RPC endpoint
type RPCUrl struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Factory represents a deployed launchpad factory contract
type Factory struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Active  bool   `json:"active"`
}

// ActiveRPC returns the active read endpoint, falling back to the first one
func (c Config) ActiveRPC() string {
	for _, r := range c.RPCURLs {
		if r.Active {
			return r.URL
		}
	}
	if len(c.RPCURLs) > 0 {
		return c.RPCURLs[0].URL
	}
	return ""
}

// ActiveFactory returns the active factory, falling back to the first one
func (c Config) ActiveFactory() Factory {
	for _, f := range c.Factories {
		if f.Active {
			return f
		}
	}
	if len(c.Factories) > 0 {
		return c.Factories[0]
	}
	return Factory{}
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BridgeURL: "http://127.0.0.1:1248",
		ChainID:   656476,
		RPCURLs: []RPCUrl{
			{
				Name:   "Edu-Chain Testnet",
				URL:    "https://rpc.open-campus-codex.gelato.digital",
				Active: true,
			},
		},
		Factories: []Factory{
			{
				Name:    "NameSpace Launchpad",
				Address: "0x376343F54fC19fCC383Af473e9Cd2d39Fd5cd0C7",
				Active:  true,
			},
			{
				Name:    "NameSpace Legacy",
				Address: "0xd773bE644ec4C5a9e0E2A85530902eB39AC28E79",
			},
		},
		Logger: false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	// Try to read existing config
	data, err := os.ReadFile(path)
	if err != nil {
		// File doesn't exist, create default
		cfg := DefaultConfig()
		Save(path, cfg)
		return cfg
	}

	// Parse existing config
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	// Older config files predate these fields
	if cfg.BridgeURL == "" {
		cfg.BridgeURL = DefaultConfig().BridgeURL
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = DefaultConfig().ChainID
	}
	if len(cfg.Factories) == 0 {
		cfg.Factories = DefaultConfig().Factories
	}

	return cfg
}

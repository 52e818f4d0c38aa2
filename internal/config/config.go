package config

import (
	"os"
	"strconv"
)

// Config holds the engine construction knobs loaded from environment
// variables, for use by cmd/selfplay. pkg/gow itself never reads the
// environment: callers build a gow.Config literal or use this loader.
type Config struct {
	BoardHeight                 int
	BoardWidth                  int
	NetworksEnabled             bool
	RelayAdjacencyRebroadcast   bool
	RetreatingUnitsFullyOffline bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		BoardHeight:                 envIntOrDefault("BOARD_HEIGHT", 20),
		BoardWidth:                  envIntOrDefault("BOARD_WIDTH", 25),
		NetworksEnabled:             envBoolOrDefault("NETWORKS_ENABLED", true),
		RelayAdjacencyRebroadcast:   envBoolOrDefault("RELAY_ADJACENCY_REBROADCAST", true),
		RetreatingUnitsFullyOffline: envBoolOrDefault("RETREATING_UNITS_FULLY_OFFLINE", false),
	}
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolOrDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Package config loads service configuration from environment variables,
// with an optional YAML file overlay (spec §6 "Configuration").
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Limits  LimitsConfig  `json:"limits" yaml:"limits"`
	Genetic GeneticConfig `json:"genetic" yaml:"genetic"`
	Cors    CorsConfig    `json:"cors" yaml:"cors"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// LimitsConfig holds request/run quota configuration.
type LimitsConfig struct {
	MaxOptimizationTime      time.Duration `json:"max_optimization_time" yaml:"max_optimization_time"`
	MaxShiftsPerOptimization int           `json:"max_shifts_per_optimization" yaml:"max_shifts_per_optimization"`
	MaxConcurrentOptimizations int         `json:"max_concurrent_optimizations" yaml:"max_concurrent_optimizations"`
	MaxMemoryMB              int           `json:"max_memory_mb" yaml:"max_memory_mb"`
}

// GeneticConfig holds GeneticAlgorithmOptimizer default tuning.
type GeneticConfig struct {
	Population  int `json:"population" yaml:"population"`
	Generations int `json:"generations" yaml:"generations"`
}

// CorsConfig holds CORS configuration.
type CorsConfig struct {
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// DefaultConfig returns configuration built from environment variables,
// falling back to spec §6's literal defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     getEnvOrDefault("HOST", "0.0.0.0"),
			Port:     getEnvIntOrDefault("PORT", 8000),
			LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
		Limits: LimitsConfig{
			MaxOptimizationTime:        time.Duration(getEnvIntOrDefault("MAX_OPTIMIZATION_TIME", 300)) * time.Second,
			MaxShiftsPerOptimization:   getEnvIntOrDefault("MAX_SHIFTS_PER_OPTIMIZATION", 1000),
			MaxConcurrentOptimizations: getEnvIntOrDefault("MAX_CONCURRENT_OPTIMIZATIONS", 10),
			MaxMemoryMB:                getEnvIntOrDefault("MAX_MEMORY_MB", 1024),
		},
		Genetic: GeneticConfig{
			Population:  getEnvIntOrDefault("GA_POPULATION", 50),
			Generations: getEnvIntOrDefault("GA_GENERATIONS", 100),
		},
		Cors: CorsConfig{
			AllowedOrigins: getEnvListOrDefault("ALLOWED_ORIGINS", []string{"*"}),
		},
	}
}

// LoadConfig builds the default configuration, then applies an optional
// YAML overlay if path is non-empty.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

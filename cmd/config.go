package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"instanceresponder/adapters/myredis"
)

const (
	defaultInstanceID  = "unknown"
	defaultHTTPPort    = 3000
	defaultLogLevel    = "info"
	defaultLogFormat   = "logfmt"
	defaultRegistryTTL = 15 * time.Second
)

type Config struct {
	InstanceID string
	HTTPPort   int
	LogLevel   string
	LogFormat  string
	// ShutdownTimeout bounds the drain of in-flight requests; zero waits for all of them.
	ShutdownTimeout time.Duration
	// MaxConnections caps concurrently accepted connections; zero means unlimited.
	MaxConnections int
	// Redis.Addr empty disables the instance registry.
	Redis       myredis.RedisConfig
	RegistryTTL time.Duration
	// GRPCHealthPort zero disables the gRPC health server.
	GRPCHealthPort int
}

// RegistryEnabled reports whether REDIS_ADDR was given.
func (c *Config) RegistryEnabled() bool {
	return c.Redis.Addr != ""
}

// LoadConfig loads configuration from environment variables. Every variable is optional.
func LoadConfig() (*Config, error) {
	config := &Config{
		InstanceID:  defaultInstanceID,
		HTTPPort:    defaultHTTPPort,
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
		RegistryTTL: defaultRegistryTTL,
	}

	if v := os.Getenv("INSTANCE_ID"); v != "" {
		config.InstanceID = v
	}

	portVar := "APP_PORT"
	portStr := os.Getenv(portVar)
	if portStr == "" {
		portVar = "PORT"
		portStr = os.Getenv(portVar)
	}
	if portStr != "" {
		port, err := parsePort(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", portVar, err)
		}
		config.HTTPPort = port
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			config.LogLevel = v
		default:
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: want debug, info, warn or error", v)
		}
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "logfmt", "json":
			config.LogFormat = v
		default:
			return nil, fmt.Errorf("invalid LOG_FORMAT %q: want logfmt or json", v)
		}
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: must not be negative")
		}
		config.ShutdownTimeout = d
	}

	if v := os.Getenv("MAX_CONNECTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_CONNECTIONS: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid MAX_CONNECTIONS: must not be negative")
		}
		config.MaxConnections = n
	}

	config.Redis.Addr = os.Getenv("REDIS_ADDR")

	if v := os.Getenv("REGISTRY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REGISTRY_TTL: %w", err)
		}
		if d < time.Millisecond {
			return nil, fmt.Errorf("invalid REGISTRY_TTL: must be at least 1ms")
		}
		config.RegistryTTL = d
	}

	if v := os.Getenv("GRPC_HEALTH_PORT"); v != "" {
		port, err := parsePort(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GRPC_HEALTH_PORT: %w", err)
		}
		config.GRPCHealthPort = port
	}

	return config, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

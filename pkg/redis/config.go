package redis

import (
	"fmt"
	"time"
)

// Config represents Redis configuration options
type Config struct {
	// Host is the Redis server host
	Host string
	// Port is the Redis server port
	Port int
	// Password is the Redis server password
	Password string
	// Database is the Redis database number
	Database int
	// MinIdleConns is the minimum number of idle (unused but open) connections
	MinIdleConns int
	// MaxActive is the maximum number of active connections that can be established
	MaxActive int
	// MaxRetries is the maximum number of retries for failed commands
	MaxRetries int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
}

// NewRedisConfig creates a new Redis configuration with default values
func NewRedisConfig() *Config {
	return &Config{
		Host:         "localhost",
		Port:         6379,
		MinIdleConns: 1,
		MaxActive:    10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	}
}

// WithHost sets the Redis server host
func (c *Config) WithHost(host string) *Config {
	c.Host = host
	return c
}

// WithPort sets the Redis server port
func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

// WithPassword sets the Redis server password
func (c *Config) WithPassword(password string) *Config {
	c.Password = password
	return c
}

// WithDatabase sets the Redis database number
func (c *Config) WithDatabase(database int) *Config {
	c.Database = database
	return c
}

// Addr returns host:port
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1 and 65535", c.Port)
	}
	if c.Database < 0 || c.Database > 15 {
		return fmt.Errorf("invalid database: %d, must be between 0 and 15", c.Database)
	}
	if c.MinIdleConns < 0 {
		return fmt.Errorf("invalid min idle connections: %d, must be non-negative", c.MinIdleConns)
	}
	if c.MaxActive < 0 {
		return fmt.Errorf("invalid max active connections: %d, must be non-negative", c.MaxActive)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid max retries: %d, must be non-negative", c.MaxRetries)
	}
	for name, d := range map[string]time.Duration{
		"dial":  c.DialTimeout,
		"read":  c.ReadTimeout,
		"write": c.WriteTimeout,
		"pool":  c.PoolTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("invalid %s timeout: %v, must be non-negative", name, d)
		}
	}
	return nil
}

package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty host", mutate: func(c *Config) { c.Host = "" }, wantErr: "host cannot be empty"},
		{name: "bad port", mutate: func(c *Config) { c.Port = 0 }, wantErr: "invalid port"},
		{name: "bad database", mutate: func(c *Config) { c.Database = 16 }, wantErr: "invalid database"},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = -1 }, wantErr: "invalid max retries"},
		{name: "negative timeout", mutate: func(c *Config) { c.ReadTimeout = -time.Second }, wantErr: "invalid read timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRedisConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Builders(t *testing.T) {
	c := NewRedisConfig().WithHost("cache").WithPort(6380).WithPassword("secret").WithDatabase(2)

	assert.Equal(t, "cache:6380", c.Addr())
	assert.Equal(t, "secret", c.Password)
	assert.Equal(t, 2, c.Database)
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(NewRedisConfig().WithPort(70000))
	assert.ErrorContains(t, err, "invalid Redis configuration")
}

func TestLock_Key(t *testing.T) {
	client, err := NewClient(nil)
	assert.NoError(t, err)
	defer client.Close()

	plain := NewLock(client, "writer", nil)
	assert.Equal(t, "writer", plain.Key())

	opts := NewLockOptions()
	opts.Namespace = "go-todo"
	namespaced := NewLock(client, "writer", opts)
	assert.Equal(t, "go-todo::writer", namespaced.Key())
	assert.NotEqual(t, plain.value, namespaced.value)
}

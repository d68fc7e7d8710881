package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Env:       "development",
		Port:      "8080",
		DBDriver:  "sqlite",
		DBDSN:     "auction_site.db",
		JWTSecret: "secure-secret-at-least-32-chars-long",
		TokenTTL:  time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero token ttl", func(c *Config) { c.TokenTTL = 0 }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"postgres driver", func(c *Config) { c.DBDriver = "postgres" }, false},
		{"empty dsn", func(c *Config) { c.DBDSN = "" }, true},
		{"negative fake auctions", func(c *Config) { c.FakeAuctions = -1 }, true},
		{"production default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"production short secret", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
		{"production strong secret", func(c *Config) { c.Env = "production" }, false},
		{"development short secret only warns", func(c *Config) { c.JWTSecret = "short" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "  SQLite ")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("FAKE_AUCTIONS", "5")
	t.Setenv("MINIO_USE_SSL", "true")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, 2*time.Hour, c.TokenTTL)
	assert.Equal(t, 5, c.FakeAuctions)
	assert.True(t, c.MinIOUseSSL)
	assert.Equal(t, "auction-images", c.MinIOBucket)
	assert.Equal(t, "admin@auction.com", c.AdminEmail)
}

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", c.Env)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, int64(10<<20), c.MaxUploadSize)
	assert.True(t, c.SeedOnStart)
	assert.Empty(t, c.RedisURL)
}

// inConfigDir runs the test from an empty app directory holding the given config.yml
func inConfigDir(t *testing.T, contents string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(contents), 0o600))
	t.Chdir(dir)
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	inConfigDir(t, "MINIO_BUCKET: lot-images\nFAKE_AUCTIONS: 3\n")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "lot-images", c.MinIOBucket)
	assert.Equal(t, 3, c.FakeAuctions)
}

func TestLoadConfig_MalformedConfigFile(t *testing.T) {
	inConfigDir(t, "PORT: [8080\nLOG_LEVEL: debug\n")

	c, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "unable to read config file")
}

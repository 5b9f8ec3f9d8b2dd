package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		DBDriver:            "postgres",
		AuthMode:            "jwt",
		JWTSecret:           "s3cret",
		VisionProvider:      "llm",
		VisionMaxImageBytes: 1024,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "driver normalized", mutate: func(c *Config) { c.DBDriver = " SQLite " }},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: "DB_DRIVER"},
		{name: "jwt without secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "fake auth needs no secret", mutate: func(c *Config) { c.AuthMode = "fake"; c.JWTSecret = "" }},
		{name: "unknown auth", mutate: func(c *Config) { c.AuthMode = "oauth" }, wantErr: "AUTH_MODE"},
		{name: "unknown vision", mutate: func(c *Config) { c.VisionProvider = "magic" }, wantErr: "VISION_PROVIDER"},
		{name: "zero image size", mutate: func(c *Config) { c.VisionMaxImageBytes = 0 }, wantErr: "VISION_MAX_IMAGE_BYTES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_NormalizesDriver(t *testing.T) {
	c := validConfig()
	c.DBDriver = " SQLite "
	require.NoError(t, c.Validate())
	assert.Equal(t, "sqlite", c.DBDriver)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("AUTH_MODE", "fake")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("VISION_PROVIDER", "llm")
	t.Setenv("VISION_MAX_IMAGE_BYTES", "10485760")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "llm", cfg.VisionProvider)
	assert.Equal(t, int64(10485760), cfg.VisionMaxImageBytes)
	assert.Equal(t, "fake", cfg.AuthMode)
}

func TestPostgresDSN(t *testing.T) {
	c := Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", c.PostgresDSN())
}

func TestOpenDB_SQLiteMigrates(t *testing.T) {
	db, err := OpenDB(&Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	for _, table := range []string{"users", "profiles", "food_items", "ingestions", "daily_records", "notifications", "user_devices", "appointments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

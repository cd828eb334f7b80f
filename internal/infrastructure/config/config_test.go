package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"ANASCB_APP_NAME":          os.Getenv("ANASCB_APP_NAME"),
		"ANASCB_APP_ENV":           os.Getenv("ANASCB_APP_ENV"),
		"ANASCB_APP_PORT":          os.Getenv("ANASCB_APP_PORT"),
		"ANASCB_DATABASE_HOST":     os.Getenv("ANASCB_DATABASE_HOST"),
		"ANASCB_DATABASE_PASSWORD": os.Getenv("ANASCB_DATABASE_PASSWORD"),
		"ANASCB_JWT_SECRET":        os.Getenv("ANASCB_JWT_SECRET"),
		"ANASCB_SHIPPING_FLAT_FEE": os.Getenv("ANASCB_SHIPPING_FLAT_FEE"),
		"ANASCB_MAIL_ENABLED":      os.Getenv("ANASCB_MAIL_ENABLED"),
		"ANASCB_MAIL_API_KEY":      os.Getenv("ANASCB_MAIL_API_KEY"),
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "anascb-store", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "anascb", cfg.Database.DBName)
		assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, 35.0, cfg.Shipping.FlatFee)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "https://api.resend.com", cfg.Mail.BaseURL)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("ANASCB_APP_PORT", "9090")
		os.Setenv("ANASCB_DATABASE_HOST", "db.internal")
		os.Setenv("ANASCB_SHIPPING_FLAT_FEE", "50")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 50.0, cfg.Shipping.FlatFee)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("ANASCB_APP_ENV", "production")
		os.Setenv("ANASCB_DATABASE_PASSWORD", "secret")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("ANASCB_APP_ENV", "production")
		os.Setenv("ANASCB_JWT_SECRET", "super-secret")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		DBName:   "anascb",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=anascb sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}

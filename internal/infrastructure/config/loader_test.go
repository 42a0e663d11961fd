package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironment(t *testing.T) {
	t.Run("should default to development", func(t *testing.T) {
		t.Setenv("SH_ENV", "")
		assert.Equal(t, Development, getEnvironment())
	})

	t.Run("should lowercase the value", func(t *testing.T) {
		t.Setenv("SH_ENV", "Production")
		assert.Equal(t, Production, getEnvironment())
	})
}

func TestProcessEnvOverrides(t *testing.T) {
	t.Setenv("SH_DB_HOST", "db.internal")
	t.Setenv("SH_JWT_SECRET", "s3cret")
	t.Setenv("SH_SERVER_PORT", "9090")
	t.Setenv("SH_LEDGER_QUEUE_SIZE", "not-a-number")
	t.Setenv("SH_KAFKA_ENABLED", "true")
	t.Setenv("SH_KAFKA_BROKERS", "k1:9092,k2:9092")

	v := viper.New()
	setDefaults(v)
	processEnvOverrides(v)

	assert.Equal(t, "db.internal", v.GetString("database.host"))
	assert.Equal(t, "s3cret", v.GetString("auth.jwtSecret"))
	assert.Equal(t, 9090, v.GetInt("server.port"))
	assert.Equal(t, 64, v.GetInt("ledger.queueSize"), "unparsable values keep the default")
	assert.True(t, v.GetBool("kafka.enabled"))
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, v.GetStringSlice("kafka.brokers"))
}

func TestProcessDurations(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{ReadTimeout: 15, ShutdownTimeout: 10},
		Database: DatabaseConfig{ConnMaxLifetime: 30, QueryTimeout: 5},
		Ledger:   LedgerConfig{IdleTimeout: 300},
		Auth:     AuthConfig{TokenTTL: 60},
		Redis:    RedisConfig{PresenceTTL: 300, RateWindow: 60},
	}

	processDurations(cfg)

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Ledger.IdleTimeout)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Redis.PresenceTTL)
	assert.Equal(t, time.Minute, cfg.Redis.RateWindow)
}

func TestLoadConfig(t *testing.T) {
	t.Run("should prefer environment overrides over the file", func(t *testing.T) {
		t.Setenv("SH_ENV", Test)
		t.Setenv("SH_DB_NAME", "from_env")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, "from_env", cfg.Database.Database)
		assert.Greater(t, cfg.Ledger.QueueSize, 0)
		assert.GreaterOrEqual(t, cfg.Server.ShutdownTimeout, time.Second)
	})
}

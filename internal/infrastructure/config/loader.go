package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "SH"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"./configs/.env",
	"../configs/.env",
}

var errNoDotEnv = errors.New("no .env file found in search paths")

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil && !errors.Is(err, errNoDotEnv) {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// defaults plus environment are enough to run
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env

	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found. Existing environment
// variables are never overwritten.
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}
	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errNoDotEnv
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.maxUploadMB", 16)

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.slowThresholdMs", 200)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 2) // seconds

	v.SetDefault("logger.level", "info")

	v.SetDefault("ledger.queueSize", 64)
	v.SetDefault("ledger.maxRetries", 3)
	v.SetDefault("ledger.historyLimit", 20)
	v.SetDefault("ledger.idleTimeout", 300) // seconds

	v.SetDefault("auth.tokenTTL", 60) // minutes

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.presenceTTL", 300) // seconds
	v.SetDefault("redis.rateLimit", 120)
	v.SetDefault("redis.rateWindow", 60) // seconds

	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "socialhub")

	v.SetDefault("smtp.port", 587)

	v.SetDefault("kafka.topic", "socialhub.notifications")
}

// getEnvironment determines the environment from SH_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides maps the flat variable names used in deployments onto
// config keys. Secrets are expected to arrive this way.
func processEnvOverrides(v *viper.Viper) {
	strs := map[string]string{
		"SH_DB_HOST":            "database.host",
		"SH_DB_PORT":            "database.port",
		"SH_DB_USERNAME":        "database.username",
		"SH_DB_PASSWORD":        "database.password",
		"SH_DB_NAME":            "database.database",
		"SH_DB_SSL_MODE":        "database.sslMode",
		"SH_SERVER_HOST":        "server.host",
		"SH_LOGGER_LEVEL":       "logger.level",
		"SH_JWT_SECRET":         "auth.jwtSecret",
		"SH_REDIS_ADDR":         "redis.addr",
		"SH_REDIS_PASSWORD":     "redis.password",
		"SH_STORAGE_ENDPOINT":   "storage.endpoint",
		"SH_STORAGE_BUCKET":     "storage.bucket",
		"SH_STORAGE_ACCESS_KEY": "storage.accessKeyId",
		"SH_STORAGE_SECRET_KEY": "storage.secretAccessKey",
		"SH_SMTP_HOST":          "smtp.host",
		"SH_SMTP_USERNAME":      "smtp.username",
		"SH_SMTP_PASSWORD":      "smtp.password",
		"SH_SMTP_FROM":          "smtp.from",
		"SH_KAFKA_TOPIC":        "kafka.topic",
	}
	for name, key := range strs {
		if val := os.Getenv(name); val != "" {
			v.Set(key, val)
		}
	}

	ints := map[string]string{
		"SH_SERVER_PORT":              "server.port",
		"SH_DB_MAX_OPEN_CONNS":        "database.maxOpenConns",
		"SH_DB_MAX_IDLE_CONNS":        "database.maxIdleConns",
		"SH_DB_QUERY_TIMEOUT_SECONDS": "database.queryTimeout",
		"SH_LEDGER_QUEUE_SIZE":        "ledger.queueSize",
		"SH_LEDGER_MAX_RETRIES":       "ledger.maxRetries",
		"SH_REDIS_RATE_LIMIT":         "redis.rateLimit",
		"SH_SMTP_PORT":                "smtp.port",
	}
	for name, key := range ints {
		if val, ok := getEnvInt(name); ok {
			v.Set(key, val)
		}
	}

	bools := map[string]string{
		"SH_STORAGE_ENABLED": "storage.enabled",
		"SH_SMTP_ENABLED":    "smtp.enabled",
		"SH_KAFKA_ENABLED":   "kafka.enabled",
	}
	for name, key := range bools {
		if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
			v.Set(key, val)
		}
	}

	if brokers := os.Getenv("SH_KAFKA_BROKERS"); brokers != "" {
		v.Set("kafka.brokers", strings.Split(brokers, ","))
	}
}

func getEnvInt(name string) (int, bool) {
	val, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return 0, false
	}
	return val, true
}

// processDurations converts the raw second and minute counts read from
// config into time.Duration values
func processDurations(config *Config) {
	seconds := func(d time.Duration) time.Duration { return d * time.Second }
	minutes := func(d time.Duration) time.Duration { return d * time.Minute }

	config.Server.ReadTimeout = seconds(config.Server.ReadTimeout)
	config.Server.WriteTimeout = seconds(config.Server.WriteTimeout)
	config.Server.IdleTimeout = seconds(config.Server.IdleTimeout)
	config.Server.ReadHeaderTimeout = seconds(config.Server.ReadHeaderTimeout)
	config.Server.ShutdownTimeout = seconds(config.Server.ShutdownTimeout)

	config.Database.ConnMaxLifetime = minutes(config.Database.ConnMaxLifetime)
	config.Database.ConnMaxIdleTime = minutes(config.Database.ConnMaxIdleTime)
	config.Database.QueryTimeout = seconds(config.Database.QueryTimeout)
	config.Database.RetryDelay = seconds(config.Database.RetryDelay)

	config.Ledger.IdleTimeout = seconds(config.Ledger.IdleTimeout)

	config.Auth.TokenTTL = minutes(config.Auth.TokenTTL)

	config.Redis.PresenceTTL = seconds(config.Redis.PresenceTTL)
	config.Redis.RateWindow = seconds(config.Redis.RateWindow)
}

package config

import (
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

// EnvPrefix prefixes every environment variable read by the service
const EnvPrefix = "RSV"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// .env is optional, real deployments set the variables directly
	if err := loadDotEnvFile(); err != nil {
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
		return nil, fmt.Errorf("error reading config file: %w", err)
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

// loadDotEnvFile loads the first .env file found in DotEnvPaths
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
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.publicUrl", "http://localhost:8080")
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.slowThresholdMs", 100)
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.poolSize", 50)
	v.SetDefault("store.redis.dialTimeout", 5)
	v.SetDefault("store.redis.readTimeout", 3)
	v.SetDefault("store.redis.writeTimeout", 3)
	v.SetDefault("store.badger.path", "./data/badger")
	v.SetDefault("store.badger.gcInterval", 10)
	v.SetDefault("store.badger.gcDiscardRatio", 0.5)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "file:venues.db?cache=shared")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 30)
	v.SetDefault("database.connMaxIdleTime", 15)
	v.SetDefault("database.queryTimeout", 5)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)
	v.SetDefault("database.seedVenues", true)

	v.SetDefault("reservation.transactionTtl", 600)
	v.SetDefault("reservation.maxRetries", 3)
	v.SetDefault("reservation.retryIntervalMs", 50)
	v.SetDefault("reservation.maxRetryIntervalMs", 500)
	v.SetDefault("reservation.jitterFactor", 0.2)
	v.SetDefault("reservation.timezone", "Asia/Tokyo")
	v.SetDefault("reservation.currency", "JPY")

	v.SetDefault("payment.provider", "linepay")
	v.SetDefault("payment.linePay.sandbox", true)
	v.SetDefault("payment.linePay.timeout", 10)
	v.SetDefault("payment.omise.sourceType", "paypay")

	v.SetDefault("messaging.line.enabled", false)
	v.SetDefault("messaging.line.timeout", 5)
	v.SetDefault("messaging.line.requestsPerSecond", 20)
	v.SetDefault("messaging.line.burst", 5)

	v.SetDefault("events.kafka.enabled", false)
	v.SetDefault("events.kafka.topic", "reservation-events")
	v.SetDefault("events.kafka.compression", "snappy")
	v.SetDefault("events.kafka.requiredAcks", -1)
	v.SetDefault("events.kafka.maxAttempts", 3)
	v.SetDefault("events.kafka.batchTimeoutMs", 10)
	v.SetDefault("events.kafka.writeTimeout", 5)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("cors.allowedOrigins", []string{})

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 30)
	v.SetDefault("rateLimit.burst", 5)
	v.SetDefault("rateLimit.idleTtl", 10)
}

// getEnvironment determines the environment from RSV_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides lets environment variables win over file values for
// secrets and the settings most often changed per deployment
func processEnvOverrides(v *viper.Viper) {
	overrides := map[string]string{
		"RSV_DB_DRIVER":                 "database.driver",
		"RSV_DB_HOST":                   "database.host",
		"RSV_DB_PORT":                   "database.port",
		"RSV_DB_USERNAME":               "database.username",
		"RSV_DB_PASSWORD":               "database.password",
		"RSV_DB_NAME":                   "database.database",
		"RSV_DB_SSL_MODE":               "database.sslMode",
		"RSV_DB_PATH":                   "database.path",
		"RSV_STORE_DRIVER":              "store.driver",
		"RSV_REDIS_ADDR":                "store.redis.addr",
		"RSV_REDIS_PASSWORD":            "store.redis.password",
		"RSV_SERVER_HOST":               "server.host",
		"RSV_SERVER_PUBLIC_URL":         "server.publicUrl",
		"RSV_LOGGER_LEVEL":              "logger.level",
		"RSV_PAYMENT_PROVIDER":          "payment.provider",
		"RSV_LINEPAY_CHANNEL_ID":        "payment.linePay.channelId",
		"RSV_LINEPAY_CHANNEL_SECRET":    "payment.linePay.channelSecret",
		"RSV_OMISE_PUBLIC_KEY":          "payment.omise.publicKey",
		"RSV_OMISE_SECRET_KEY":          "payment.omise.secretKey",
		"RSV_LINE_CHANNEL_ACCESS_TOKEN": "messaging.line.channelAccessToken",
		"RSV_LINE_CHANNEL_SECRET":       "messaging.line.channelSecret",
		"RSV_RESERVATION_TIMEZONE":      "reservation.timezone",
		"RSV_KAFKA_TOPIC":               "events.kafka.topic",
		"RSV_RESERVATION_CURRENCY":      "reservation.currency",
		"RSV_LINE_RESERVE_URL":          "messaging.line.reserveUrl",
		"RSV_LINE_MANAGE_URL":           "messaging.line.manageUrl",
		"RSV_LINEPAY_BASE_URL":          "payment.linePay.baseUrl",
		"RSV_OMISE_SOURCE_TYPE":         "payment.omise.sourceType",
		"RSV_BADGER_PATH":               "store.badger.path",
		"RSV_LINE_BASE_URL":             "messaging.line.baseUrl",
		"RSV_LINEPAY_CANCEL_URL":        "payment.linePay.cancelUrl",
	}
	for env, key := range overrides {
		if val := os.Getenv(env); val != "" {
			v.Set(key, val)
		}
	}

	if brokers := os.Getenv("RSV_KAFKA_BROKERS"); brokers != "" {
		v.Set("events.kafka.brokers", strings.Split(brokers, ","))
		v.Set("events.kafka.enabled", true)
	}
	if origins := os.Getenv("RSV_CORS_ALLOWED_ORIGINS"); origins != "" {
		v.Set("cors.allowedOrigins", strings.Split(origins, ","))
	}

	if port := getEnvInt("RSV_SERVER_PORT", -1); port > 0 {
		v.Set("server.port", port)
	}
	if maxOpenConns := getEnvInt("RSV_DB_MAX_OPEN_CONNS", -1); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("RSV_DB_MAX_IDLE_CONNS", -1); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if ttl := getEnvInt("RSV_RESERVATION_TRANSACTION_TTL_SECONDS", -1); ttl > 0 {
		v.Set("reservation.transactionTtl", ttl)
	}
	if maxRetries := getEnvInt("RSV_RESERVATION_MAX_RETRIES", -1); maxRetries >= 0 {
		v.Set("reservation.maxRetries", maxRetries)
	}
	if rpm := getEnvInt("RSV_RATE_LIMIT_REQUESTS_PER_MINUTE", -1); rpm > 0 {
		v.Set("rateLimit.requestsPerMinute", rpm)
	}
	if sandbox := os.Getenv("RSV_LINEPAY_SANDBOX"); sandbox != "" {
		if b, err := strconv.ParseBool(sandbox); err == nil {
			v.Set("payment.linePay.sandbox", b)
		}
	}
	if enabled := os.Getenv("RSV_LINE_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			v.Set("messaging.line.enabled", b)
		}
	}
}

// getEnvInt reads an integer environment variable
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts the raw unit counts read from config into durations
func processDurations(config *Config) {
	seconds := []*time.Duration{
		&config.Server.ReadTimeout,
		&config.Server.WriteTimeout,
		&config.Server.IdleTimeout,
		&config.Server.ReadHeaderTimeout,
		&config.Server.ShutdownTimeout,
		&config.Store.Redis.DialTimeout,
		&config.Store.Redis.ReadTimeout,
		&config.Store.Redis.WriteTimeout,
		&config.Database.QueryTimeout,
		&config.Database.RetryDelay,
		&config.Reservation.TransactionTTL,
		&config.Payment.LinePay.Timeout,
		&config.Messaging.Line.Timeout,
		&config.Events.Kafka.WriteTimeout,
	}
	for _, d := range seconds {
		*d *= time.Second
	}

	minutes := []*time.Duration{
		&config.Store.Badger.GCInterval,
		&config.Database.ConnMaxLifetime,
		&config.Database.ConnMaxIdleTime,
		&config.RateLimit.IdleTTL,
	}
	for _, d := range minutes {
		*d *= time.Minute
	}

	millis := []*time.Duration{
		&config.Store.SlowThresholdMs,
		&config.Reservation.RetryIntervalMs,
		&config.Reservation.MaxRetryIntervalMs,
		&config.Events.Kafka.BatchTimeoutMs,
	}
	for _, d := range millis {
		*d *= time.Millisecond
	}
}

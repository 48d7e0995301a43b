package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Store       StoreConfig       `mapstructure:"store"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Reservation ReservationConfig `mapstructure:"reservation"`
	Payment     PaymentConfig     `mapstructure:"payment"`
	Messaging   MessagingConfig   `mapstructure:"messaging"`
	Events      EventsConfig      `mapstructure:"events"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	CORS        CORSConfig        `mapstructure:"cors"`
	RateLimit   RateLimitConfig   `mapstructure:"rateLimit"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	PublicURL         string        `mapstructure:"publicUrl"`         // Base URL the payment gateway calls back
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// StoreConfig selects the key-value store holding the ledger and reservations
type StoreConfig struct {
	Driver          string        `mapstructure:"driver"` // memory, redis or badger
	SlowThresholdMs time.Duration `mapstructure:"slowThresholdMs"`
	Redis           RedisConfig   `mapstructure:"redis"`
	Badger          BadgerConfig  `mapstructure:"badger"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"poolSize"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`  // seconds
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`  // seconds
	WriteTimeout time.Duration `mapstructure:"writeTimeout"` // seconds
}

// BadgerConfig contains embedded store settings
type BadgerConfig struct {
	Path           string        `mapstructure:"path"`
	InMemory       bool          `mapstructure:"inMemory"`
	GCInterval     time.Duration `mapstructure:"gcInterval"` // minutes
	GCDiscardRatio float64       `mapstructure:"gcDiscardRatio"`
}

// DatabaseConfig contains the venue directory database settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	Path            string        `mapstructure:"path"` // sqlite only
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
	SeedVenues      bool          `mapstructure:"seedVenues"` // Re-insert missing default venues at every start
}

// ReservationConfig contains reservation lifecycle settings
type ReservationConfig struct {
	TransactionTTL     time.Duration `mapstructure:"transactionTtl"` // seconds
	MaxRetries         int           `mapstructure:"maxRetries"`
	RetryIntervalMs    time.Duration `mapstructure:"retryIntervalMs"`
	MaxRetryIntervalMs time.Duration `mapstructure:"maxRetryIntervalMs"`
	JitterFactor       float64       `mapstructure:"jitterFactor"`
	Timezone           string        `mapstructure:"timezone"`
	Currency           string        `mapstructure:"currency"`
}

// PaymentConfig selects and configures the payment gateway
type PaymentConfig struct {
	Provider string        `mapstructure:"provider"` // linepay or omise
	LinePay  LinePayConfig `mapstructure:"linePay"`
	Omise    OmiseConfig   `mapstructure:"omise"`
}

// LinePayConfig contains LINE Pay merchant settings
type LinePayConfig struct {
	ChannelID     string        `mapstructure:"channelId"`
	ChannelSecret string        `mapstructure:"channelSecret"`
	Sandbox       bool          `mapstructure:"sandbox"`
	BaseURL       string        `mapstructure:"baseUrl"`
	CancelURL     string        `mapstructure:"cancelUrl"`
	Timeout       time.Duration `mapstructure:"timeout"` // seconds
}

// OmiseConfig contains Omise keys
type OmiseConfig struct {
	PublicKey  string `mapstructure:"publicKey"`
	SecretKey  string `mapstructure:"secretKey"`
	SourceType string `mapstructure:"sourceType"`
}

// MessagingConfig contains chat channel settings
type MessagingConfig struct {
	Line LineConfig `mapstructure:"line"`
}

// LineConfig contains Messaging API settings and the front-end links the bot hands out
type LineConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	ChannelAccessToken string        `mapstructure:"channelAccessToken"`
	ChannelSecret      string        `mapstructure:"channelSecret"`
	BaseURL            string        `mapstructure:"baseUrl"`
	Timeout            time.Duration `mapstructure:"timeout"` // seconds
	RequestsPerSecond  float64       `mapstructure:"requestsPerSecond"`
	Burst              int           `mapstructure:"burst"`
	ReserveURL         string        `mapstructure:"reserveUrl"`
	ManageURL          string        `mapstructure:"manageUrl"`
}

// EventsConfig contains lifecycle event publishing settings
type EventsConfig struct {
	Kafka KafkaConfig `mapstructure:"kafka"`
}

// KafkaConfig contains Kafka writer settings
type KafkaConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Brokers        []string      `mapstructure:"brokers"`
	Topic          string        `mapstructure:"topic"`
	Compression    string        `mapstructure:"compression"`
	RequiredAcks   int           `mapstructure:"requiredAcks"`
	MaxAttempts    int           `mapstructure:"maxAttempts"`
	BatchTimeoutMs time.Duration `mapstructure:"batchTimeoutMs"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"` // seconds
}

// MetricsConfig contains Prometheus settings
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// CORSConfig lists the origins allowed to call the API from a browser
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// RateLimitConfig throttles reservation requests per client
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerMinute int           `mapstructure:"requestsPerMinute"`
	Burst             int           `mapstructure:"burst"`
	IdleTTL           time.Duration `mapstructure:"idleTtl"` // minutes
}

// ConfirmURL is the callback handed to the payment gateway
func (c *Config) ConfirmURL() string {
	return c.Server.PublicURL + "/pay/confirm"
}

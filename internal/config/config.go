package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-infusion/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// StorageConfig selects the storage backend of the engine state and the token ledger
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m", "30m"
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`

	// DuplicateWindow is how long JetStream deduplicates message ids
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// EthereumConfig holds the NFT registry RPC configuration
type EthereumConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	ChainID             domain.Chain  `mapstructure:"chain_id"`
	RetryMaxElapsed     time.Duration `mapstructure:"retry_max_elapsed"`
	PrefetchConcurrency int           `mapstructure:"prefetch_concurrency"`
}

// EngineConfig holds the policy knobs of the infusion engine
type EngineConfig struct {
	// ProxyPolicy gates allow/deny of infusion proxies: "open" or "admin"
	ProxyPolicy string `mapstructure:"proxy_policy"`
	// ClaimFloorPolicy selects the minimum claim exemption: "drain" or "request"
	ClaimFloorPolicy string `mapstructure:"claim_floor_policy"`
	// EscrowAddress is the ledger account holding infused balances
	EscrowAddress string `mapstructure:"escrow_address"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RateLimitConfig holds the per-client API rate limit configuration
type RateLimitConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	RedisAddr           string        `mapstructure:"redis_addr"`
	RedisPassword       string        `mapstructure:"redis_password"`
	RedisDB             int           `mapstructure:"redis_db"`
	KeyPrefix           string        `mapstructure:"key_prefix"`
	RequestsPerSecond   int           `mapstructure:"requests_per_second"`
	Burst               int           `mapstructure:"burst"`
	EnableLocalFallback bool          `mapstructure:"enable_local_fallback"`
	HealthCheckInterval time.Duration `mapstructure:"health_check_interval"`
}

// RelayConfig holds the outbox relay loop configuration
type RelayConfig struct {
	PollInterval         time.Duration `mapstructure:"poll_interval"`
	BatchSize            int           `mapstructure:"batch_size"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	RetryMaxElapsed      time.Duration `mapstructure:"retry_max_elapsed"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Storage    StorageConfig   `mapstructure:"storage"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	Engine     EngineConfig    `mapstructure:"engine"`
	Auth       AuthConfig      `mapstructure:"auth"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// EventRelayConfig holds configuration for event-relay
type EventRelayConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Relay      RelayConfig    `mapstructure:"relay"`
}

// CLIConfig holds configuration for realmctl
type CLIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Engine     EngineConfig   `mapstructure:"engine"`
	NATS       NATSConfig     `mapstructure:"nats"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("storage.driver", StorageDriverPostgres)
	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	setEngineDefaults(v)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.key_prefix", "ff:infusion:api:")
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.health_check_interval", 10*time.Second)

	var config APIConfig
	if err := load(v, &config); err != nil {
		return nil, err
	}

	if config.Storage.Driver != StorageDriverPostgres && config.Storage.Driver != StorageDriverMemory {
		return nil, fmt.Errorf("unsupported storage driver: %s", config.Storage.Driver)
	}

	return &config, nil
}

// LoadEventRelayConfig loads configuration for event-relay
func LoadEventRelayConfig(configFile string, envPath string) (*EventRelayConfig, error) {
	v := configureViper("event-relay", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("nats.connection_name", "ff-infusion-event-relay")
	v.SetDefault("relay.poll_interval", time.Second)
	v.SetDefault("relay.batch_size", 100)
	v.SetDefault("relay.retry_initial_interval", 500*time.Millisecond)
	v.SetDefault("relay.retry_max_elapsed", time.Minute)

	var config EventRelayConfig
	if err := load(v, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadCLIConfig loads configuration for realmctl
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("realmctl", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setEthereumDefaults(v)
	setEngineDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("nats.connection_name", "ff-infusion-realmctl")

	var config CLIConfig
	if err := load(v, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setEthereumDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.chain_id", string(domain.ChainEthereumMainnet))
	v.SetDefault("ethereum.retry_max_elapsed", 10*time.Second)
	v.SetDefault("ethereum.prefetch_concurrency", 8)
}

func setEngineDefaults(v *viper.Viper) {
	v.SetDefault("engine.proxy_policy", "open")
	v.SetDefault("engine.claim_floor_policy", "drain")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream_name", "INFUSION")
	v.SetDefault("nats.subject_prefix", "infusion")
	v.SetDefault("nats.max_reconnects", -1)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)
	v.SetDefault("nats.ack_wait", 30*time.Second)
	v.SetDefault("nats.max_deliver", 5)
	v.SetDefault("nats.duplicate_window", 2*time.Minute)
}

// load reads the config file, if any, and unmarshals into out
func load(v *viper.Viper, out interface{}) error {
	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_INFUSION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Storage
		"storage.driver",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"nats.duplicate_window",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.retry_max_elapsed",
		"ethereum.prefetch_concurrency",
		// Engine
		"engine.proxy_policy",
		"engine.claim_floor_policy",
		"engine.escrow_address",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.redis_addr",
		"rate_limit.redis_password",
		"rate_limit.redis_db",
		"rate_limit.key_prefix",
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.enable_local_fallback",
		"rate_limit.health_check_interval",
		// Relay
		"relay.poll_interval",
		"relay.batch_size",
		"relay.retry_initial_interval",
		"relay.retry_max_elapsed",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile writes content to a config.yaml in a temp dir.
// Empty content returns an empty path so that viper searches its default locations.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	if content == "" {
		return ""
	}
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
storage:
  driver: postgres
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
  max_open_conns: 20
  conn_max_lifetime: "5m"
ethereum:
  rpc_url: "http://localhost:8545"
  chain_id: "eip155:11155111"
  prefetch_concurrency: 4
engine:
  proxy_policy: admin
  claim_floor_policy: request
  escrow_address: "0x00000000000000000000000000000000000000e5"
auth:
  jwt_public_key: "key"
  api_keys: ["k1", "k2"]
rate_limit:
  enabled: true
  redis_addr: "localhost:6379"
  requests_per_second: 5
  burst: 10
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
				assert.Equal(t, 5432, cfg.Database.Port) // default
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.MaxOpenConns)
				assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, "http://localhost:8545", cfg.Ethereum.RPCURL)
				assert.Equal(t, "eip155:11155111", string(cfg.Ethereum.ChainID))
				assert.Equal(t, 4, cfg.Ethereum.PrefetchConcurrency)
				assert.Equal(t, "admin", cfg.Engine.ProxyPolicy)
				assert.Equal(t, "request", cfg.Engine.ClaimFloorPolicy)
				assert.Equal(t, "0x00000000000000000000000000000000000000e5", cfg.Engine.EscrowAddress)
				assert.Equal(t, []string{"k1", "k2"}, cfg.Auth.APIKeys)
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, "localhost:6379", cfg.RateLimit.RedisAddr)
				assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 10, cfg.RateLimit.Burst)
				assert.True(t, cfg.RateLimit.EnableLocalFallback) // default
			},
		},
		{
			name:       "missing config file uses defaults",
			configFile: "",
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 10, cfg.Server.WriteTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
				assert.Equal(t, "eip155:1", string(cfg.Ethereum.ChainID))
				assert.Equal(t, 10*time.Second, cfg.Ethereum.RetryMaxElapsed)
				assert.Equal(t, 8, cfg.Ethereum.PrefetchConcurrency)
				assert.Equal(t, "open", cfg.Engine.ProxyPolicy)
				assert.Equal(t, "drain", cfg.Engine.ClaimFloorPolicy)
				assert.False(t, cfg.RateLimit.Enabled)
				assert.Equal(t, "ff:infusion:api:", cfg.RateLimit.KeyPrefix)
				assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 10*time.Second, cfg.RateLimit.HealthCheckInterval)
			},
		},
		{
			name: "memory storage driver",
			configFile: `
storage:
  driver: memory
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
			},
		},
		{
			name: "unknown storage driver",
			configFile: `
storage:
  driver: sqlite
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfigFile(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadEventRelayConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *EventRelayConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: db
  user: relay
  password: secret
  dbname: infusion
nats:
  url: "nats://nats:4222"
  stream_name: "TEST_STREAM"
  subject_prefix: "test"
  max_reconnects: 3
  reconnect_wait: "5s"
relay:
  poll_interval: "250ms"
  batch_size: 10
  retry_max_elapsed: "30s"
`,
			validate: func(t *testing.T, cfg *EventRelayConfig) {
				assert.Equal(t, "db", cfg.Database.Host)
				assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, "test", cfg.NATS.SubjectPrefix)
				assert.Equal(t, 3, cfg.NATS.MaxReconnects)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "ff-infusion-event-relay", cfg.NATS.ConnectionName) // default
				assert.Equal(t, 250*time.Millisecond, cfg.Relay.PollInterval)
				assert.Equal(t, 10, cfg.Relay.BatchSize)
				assert.Equal(t, 30*time.Second, cfg.Relay.RetryMaxElapsed)
			},
		},
		{
			name:       "defaults",
			configFile: "",
			validate: func(t *testing.T, cfg *EventRelayConfig) {
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "INFUSION", cfg.NATS.StreamName)
				assert.Equal(t, "infusion", cfg.NATS.SubjectPrefix)
				assert.Equal(t, -1, cfg.NATS.MaxReconnects)
				assert.Equal(t, 2*time.Minute, cfg.NATS.DuplicateWindow)
				assert.Equal(t, time.Second, cfg.Relay.PollInterval)
				assert.Equal(t, 100, cfg.Relay.BatchSize)
				assert.Equal(t, time.Minute, cfg.Relay.RetryMaxElapsed)
			},
		},
		{
			name: "invalid duration",
			configFile: `
relay:
  poll_interval: "soon"
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadEventRelayConfig(writeConfigFile(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadCLIConfig(t *testing.T) {
	cfg, err := LoadCLIConfig(writeConfigFile(t, `
database:
  host: localhost
  dbname: infusion
engine:
  escrow_address: "0x00000000000000000000000000000000000000e5"
`), "")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "0x00000000000000000000000000000000000000e5", cfg.Engine.EscrowAddress)
	assert.Equal(t, "open", cfg.Engine.ProxyPolicy)
	assert.Equal(t, "ff-infusion-realmctl", cfg.NATS.ConnectionName)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// Viper uses the FF_INFUSION_ prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `FF_INFUSION_DEBUG=true
FF_INFUSION_DATABASE_HOST=env-host
FF_INFUSION_DATABASE_PORT=3306
FF_INFUSION_ENGINE_PROXY_POLICY=admin
FF_INFUSION_RATE_LIMIT_ENABLED=true
`
	require.NoError(t, os.WriteFile(envFile, []byte(envContent), 0600))
	t.Cleanup(func() {
		for _, key := range []string{
			"FF_INFUSION_DEBUG",
			"FF_INFUSION_DATABASE_HOST",
			"FF_INFUSION_DATABASE_PORT",
			"FF_INFUSION_ENGINE_PROXY_POLICY",
			"FF_INFUSION_RATE_LIMIT_ENABLED",
		} {
			_ = os.Unsetenv(key)
		}
	})

	configFile := writeConfigFile(t, `
debug: false
database:
  host: file-host
  port: 5432
  user: file-user
engine:
  proxy_policy: open
`)

	cfg, err := LoadAPIConfig(configFile, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// .env values override the config file
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "file-user", cfg.Database.User)
	assert.Equal(t, "admin", cfg.Engine.ProxyPolicy)
	assert.True(t, cfg.RateLimit.Enabled)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/genesis-ledger/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
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
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// DispatcherConfig holds event dispatcher configuration
type DispatcherConfig struct {
	PoolSize       int           `mapstructure:"pool_size"`
	QueueSize      int           `mapstructure:"queue_size"`
	MaxElapsedTime time.Duration `mapstructure:"max_elapsed_time"`
}

// SaleConfig holds sale stage configuration. Costs are decimal wei strings so
// large values survive any config format.
type SaleConfig struct {
	Stage1Window  time.Duration `mapstructure:"stage1_window"`
	Stage2Window  time.Duration `mapstructure:"stage2_window"`
	StageCooldown time.Duration `mapstructure:"stage_cooldown"`
	Stage1Cost    string        `mapstructure:"stage1_cost"`
	Stage2Cost    string        `mapstructure:"stage2_cost"`
	Stage3Cost    string        `mapstructure:"stage3_cost"`
	MintRightsPath string       `mapstructure:"mint_rights_path"`
	AllowlistRoot  string       `mapstructure:"allowlist_root"`
}

// TierConfig holds one metadata tier: tokens at or above MinLevel resolve to URI
type TierConfig struct {
	MinLevel uint64 `mapstructure:"min_level"`
	URI      string `mapstructure:"uri"`
}

// GenesisConfig holds contract parameters
type GenesisConfig struct {
	Owner             string        `mapstructure:"owner"`
	MaxSupply         uint64        `mapstructure:"max_supply"`
	LevelUnit         time.Duration `mapstructure:"level_unit"`
	PlaceholderURI    string        `mapstructure:"placeholder_uri"`
	Tiers             []TierConfig  `mapstructure:"tiers"`
	RoyaltyRecipient  string        `mapstructure:"royalty_recipient"`
	RoyaltyPercentage uint64        `mapstructure:"royalty_percentage"`
	Sale              SaleConfig    `mapstructure:"sale"`
}

// LedgerdConfig holds configuration for the ledger daemon
type LedgerdConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Dispatcher DispatcherConfig `mapstructure:"dispatcher"`
	Genesis    GenesisConfig    `mapstructure:"genesis"`
}

// LoadLedgerdConfig loads configuration for the ledger daemon
func LoadLedgerdConfig(configFile string, envPath string) (*LedgerdConfig, error) {
	v := configureViper("genesisd", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "GENESIS_EVENTS")
	v.SetDefault("dispatcher.pool_size", 10)
	v.SetDefault("dispatcher.queue_size", 1024)
	v.SetDefault("dispatcher.max_elapsed_time", "1m")
	v.SetDefault("genesis.max_supply", 10000)
	v.SetDefault("genesis.level_unit", "1h")
	v.SetDefault("genesis.royalty_percentage", 10)
	v.SetDefault("genesis.sale.stage1_window", "72h")
	v.SetDefault("genesis.sale.stage2_window", "48h")
	v.SetDefault("genesis.sale.stage_cooldown", "48h")
	v.SetDefault("genesis.sale.stage1_cost", "0")
	v.SetDefault("genesis.sale.stage2_cost", "0")
	v.SetDefault("genesis.sale.stage3_cost", "0")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config LedgerdConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Genesis.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks contract parameters that cannot be defaulted
func (c *GenesisConfig) Validate() error {
	if !domain.IsEthereumAddress(c.Owner) {
		return fmt.Errorf("genesis.owner must be a valid address, got %q", c.Owner)
	}
	if c.MaxSupply == 0 {
		return errors.New("genesis.max_supply must be positive")
	}
	if c.RoyaltyPercentage > 100 {
		return fmt.Errorf("genesis.royalty_percentage must be 0-100, got %d", c.RoyaltyPercentage)
	}
	if c.RoyaltyRecipient != "" && !domain.IsEthereumAddress(c.RoyaltyRecipient) {
		return fmt.Errorf("genesis.royalty_recipient must be a valid address, got %q", c.RoyaltyRecipient)
	}
	for _, cost := range []string{c.Sale.Stage1Cost, c.Sale.Stage2Cost, c.Sale.Stage3Cost} {
		if _, err := uint256.FromDecimal(cost); err != nil {
			return fmt.Errorf("sale cost %q is not a decimal wei amount: %w", cost, err)
		}
	}
	return nil
}

// OwnerAddress returns the parsed contract owner address
func (c *GenesisConfig) OwnerAddress() common.Address {
	return common.HexToAddress(c.Owner)
}

// RoyaltyRecipientAddress returns the parsed royalty recipient, falling back
// to the owner when unset
func (c *GenesisConfig) RoyaltyRecipientAddress() common.Address {
	if c.RoyaltyRecipient == "" {
		return c.OwnerAddress()
	}
	return common.HexToAddress(c.RoyaltyRecipient)
}

// AllowlistRootHash returns the parsed allowlist Merkle root (zero when unset)
func (c *SaleConfig) AllowlistRootHash() common.Hash {
	if c.AllowlistRoot == "" {
		return common.Hash{}
	}
	return common.HexToHash(c.AllowlistRoot)
}

// CostWei parses a configured stage cost. Validate has already checked the
// string, so parse failures here are programming errors.
func CostWei(cost string) *uint256.Int {
	v, err := uint256.FromDecimal(cost)
	if err != nil {
		return uint256.NewInt(0)
	}
	return v
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
		// 2. Service-specific directory (e.g., cmd/genesisd/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("GENESIS")
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
		"nats.enabled",
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Dispatcher
		"dispatcher.pool_size",
		"dispatcher.queue_size",
		"dispatcher.max_elapsed_time",
		// Contract
		"genesis.owner",
		"genesis.max_supply",
		"genesis.level_unit",
		"genesis.placeholder_uri",
		"genesis.royalty_recipient",
		"genesis.royalty_percentage",
		"genesis.sale.stage1_window",
		"genesis.sale.stage2_window",
		"genesis.sale.stage_cooldown",
		"genesis.sale.stage1_cost",
		"genesis.sale.stage2_cost",
		"genesis.sale.stage3_cost",
		"genesis.sale.mint_rights_path",
		"genesis.sale.allowlist_root",
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
	for i := 0; i < 5; i++ {
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

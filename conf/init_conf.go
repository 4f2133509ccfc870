package conf

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	IndexerPort string // HTTP query API port

	Database DatabaseConfig
	Chain    ChainConfig
	Storage  StorageConfig
	Indexer  IndexerConfig
	Redis    RedisConfig
	Log      LogConfig
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	IndexerType  string // Entity store type: pebble, mysql, sqlite
	Dsn          string // MySQL or SQLite DSN
	MaxOpenConns int    // MySQL max open connections
	MaxIdleConns int    // MySQL max idle connections
	DataDir      string // PebbleDB data directory
	LogSQL       bool   // Log every SQL statement
}

// ChainConfig EVM chain configuration
type ChainConfig struct {
	Name          string // Chain name, key of the sync status row
	RpcUrl        string // JSON-RPC endpoint (http, https, ws)
	Confirmations uint64 // Blocks behind head considered final
}

// StorageConfig snapshot object storage configuration
type StorageConfig struct {
	Type  string
	Local LocalStorageConfig
	OSS   OSSStorageConfig
	S3    S3StorageConfig
	MinIO MinIOStorageConfig
}

// LocalStorageConfig local storage configuration
type LocalStorageConfig struct {
	BasePath string
}

// OSSStorageConfig OSS storage configuration
type OSSStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// S3StorageConfig AWS S3 storage configuration
type S3StorageConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Endpoint  string // Optional custom endpoint
}

// MinIOStorageConfig MinIO storage configuration
type MinIOStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ContractConfig one indexed contract
type ContractConfig struct {
	Name       string `mapstructure:"name"`        // Label used in logs and metrics
	Kind       string `mapstructure:"kind"`        // insta_share, storage_market, public_share
	Address    string `mapstructure:"address"`     // Contract address, 0x-prefixed
	StartBlock int64  `mapstructure:"start_block"` // Deployment block, logs before it are never queried
	AbiFile    string `mapstructure:"abi_file"`    // Optional ABI array or build artifact overriding the embedded ABI
}

// IndexerConfig indexer configuration
type IndexerConfig struct {
	ScanInterval     int    // Seconds to sleep once caught up
	BatchSize        int    // Blocks per eth_getLogs window
	StartHeight      int64  // First block when nothing has been synced yet
	SwaggerBaseUrl   string // Swagger API base URL (e.g., "example.com:7281")
	SnapshotInterval int    // Seconds between stats snapshots, 0 disables the exporter
	EnableProgress   bool   // Show a progress bar while catching up

	Contracts []ContractConfig
}

// RedisConfig redis configuration
type RedisConfig struct {
	Enabled  bool   // Enable Redis cache
	Host     string // Redis host
	Port     int    // Redis port
	Password string // Redis password (optional)
	DB       int    // Redis database number
	CacheTTL int    // Cache TTL in seconds (default: 300)
}

// LogConfig logger configuration
type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // console or json
	File       string // Optional rotated log file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration from the file selected by -env / -config
func InitConfig() error {
	cfg, err := LoadConfig(GetYaml())
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// LoadConfig read a YAML config file and fill in defaults
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fatal error config file: %w", err)
	}

	cfg := &Config{
		IndexerPort: v.GetString("indexer.port"),

		Database: DatabaseConfig{
			IndexerType:  v.GetString("database.indexer_type"),
			Dsn:          v.GetString("database.dsn"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
			MaxIdleConns: v.GetInt("database.max_idle_conns"),
			DataDir:      v.GetString("database.data_dir"),
			LogSQL:       v.GetBool("database.log_sql"),
		},

		Chain: ChainConfig{
			Name:          v.GetString("chain.name"),
			RpcUrl:        v.GetString("chain.rpc_url"),
			Confirmations: v.GetUint64("chain.confirmations"),
		},

		Storage: StorageConfig{
			Type: v.GetString("storage.type"),
			Local: LocalStorageConfig{
				BasePath: v.GetString("storage.local.base_path"),
			},
			OSS: OSSStorageConfig{
				Endpoint:  v.GetString("storage.oss.endpoint"),
				AccessKey: v.GetString("storage.oss.access_key"),
				SecretKey: v.GetString("storage.oss.secret_key"),
				Bucket:    v.GetString("storage.oss.bucket"),
			},
			S3: S3StorageConfig{
				Region:    v.GetString("storage.s3.region"),
				AccessKey: v.GetString("storage.s3.access_key"),
				SecretKey: v.GetString("storage.s3.secret_key"),
				Bucket:    v.GetString("storage.s3.bucket"),
				Endpoint:  v.GetString("storage.s3.endpoint"),
			},
			MinIO: MinIOStorageConfig{
				Endpoint:  v.GetString("storage.minio.endpoint"),
				AccessKey: v.GetString("storage.minio.access_key"),
				SecretKey: v.GetString("storage.minio.secret_key"),
				Bucket:    v.GetString("storage.minio.bucket"),
				UseSSL:    v.GetBool("storage.minio.use_ssl"),
			},
		},

		Indexer: IndexerConfig{
			ScanInterval:     v.GetInt("indexer.scan_interval"),
			BatchSize:        v.GetInt("indexer.batch_size"),
			StartHeight:      v.GetInt64("indexer.start_height"),
			SwaggerBaseUrl:   v.GetString("indexer.swagger_base_url"),
			SnapshotInterval: v.GetInt("indexer.snapshot_interval"),
			EnableProgress:   v.GetBool("indexer.enable_progress"),
		},

		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetInt("redis.cache_ttl"),
		},

		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
	}

	if v.IsSet("indexer.contracts") {
		contracts, err := loadContracts(v)
		if err != nil {
			return nil, err
		}
		cfg.Indexer.Contracts = contracts
	}

	applyDefaults(cfg)
	return cfg, nil
}

// loadContracts parse indexer.contracts, falling back to a manual walk when mapstructure rejects the shape
func loadContracts(v *viper.Viper) ([]ContractConfig, error) {
	var contracts []ContractConfig
	if err := v.UnmarshalKey("indexer.contracts", &contracts); err == nil {
		return contracts, nil
	} else if list, ok := v.Get("indexer.contracts").([]interface{}); ok {
		for _, item := range list {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			contracts = append(contracts, ContractConfig{
				Name:       getStringFromMap(m, "name"),
				Kind:       getStringFromMap(m, "kind"),
				Address:    getStringFromMap(m, "address"),
				StartBlock: getInt64FromMap(m, "start_block"),
				AbiFile:    getStringFromMap(m, "abi_file"),
			})
		}
		return contracts, nil
	} else {
		return nil, fmt.Errorf("failed to parse indexer.contracts: %w", err)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.IndexerPort == "" {
		cfg.IndexerPort = "7281"
	}
	if cfg.Database.IndexerType == "" {
		cfg.Database.IndexerType = "pebble"
	}
	if cfg.Database.DataDir == "" {
		cfg.Database.DataDir = "./data/pebble"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 100
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Chain.Name == "" {
		cfg.Chain.Name = "evm"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.Local.BasePath == "" {
		cfg.Storage.Local.BasePath = "./data/files"
	}
	if cfg.Indexer.ScanInterval == 0 {
		cfg.Indexer.ScanInterval = 10
	}
	if cfg.Indexer.BatchSize == 0 {
		cfg.Indexer.BatchSize = 500
	}
	if cfg.Indexer.SwaggerBaseUrl == "" {
		cfg.Indexer.SwaggerBaseUrl = "localhost:" + cfg.IndexerPort
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.CacheTTL == 0 {
		cfg.Redis.CacheTTL = 300
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	for i := range cfg.Indexer.Contracts {
		c := &cfg.Indexer.Contracts[i]
		c.Kind = strings.ToLower(strings.TrimSpace(c.Kind))
		if c.Name == "" {
			c.Name = c.Kind
		}
	}
}

// Validate fail fast on settings the indexer cannot run without
func (c *Config) Validate() error {
	if c.Chain.RpcUrl == "" {
		return fmt.Errorf("chain.rpc_url is required")
	}
	if len(c.Indexer.Contracts) == 0 {
		return fmt.Errorf("indexer.contracts is empty")
	}
	for _, contract := range c.Indexer.Contracts {
		if contract.Address == "" {
			return fmt.Errorf("contract %s has no address", contract.Name)
		}
		if contract.Kind == "" {
			return fmt.Errorf("contract %s has no kind", contract.Name)
		}
	}
	return nil
}

// Helper functions for parsing contract config from map
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getInt64FromMap(m map[string]interface{}, key string) int64 {
	if val, ok := m[key]; ok {
		switch v := val.(type) {
		case int:
			return int64(v)
		case int64:
			return v
		case float64:
			return int64(v)
		}
	}
	return 0
}

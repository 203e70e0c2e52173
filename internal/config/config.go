// Package config loads node configuration: a single Config struct
// tagged for both TOML files and environment variables, filled in
// layers (defaults, then file, then environment) by a spf13/viper
// instance, then validated as a whole before use.
package config

import "path/filepath"

// Config is the complete configuration surface of an auricd node.
type Config struct {
	SignMaxSize     int           `toml:"sign_max_size" mapstructure:"sign_max_size"`
	SignatureScheme string        `toml:"signature_scheme" mapstructure:"signature_scheme"`
	SpendTx         SpendTxConfig `toml:"spend_tx" mapstructure:"spend_tx"`
	TxData          TxDataConfig  `toml:"tx_data" mapstructure:"tx_data"`
	Name            NameConfig    `toml:"name" mapstructure:"name"`
	Oracle          OracleConfig  `toml:"oracle" mapstructure:"oracle"`
	DatabasePath    string        `toml:"database_path" mapstructure:"database_path"`
	DebugLogfile    string        `toml:"debug_logfile" mapstructure:"debug_logfile"`

	configPath string `toml:"-" mapstructure:"-"`
}

// SpendTxConfig holds the Spend transaction's wire-format version.
type SpendTxConfig struct {
	Version uint64 `toml:"version" mapstructure:"version"`
}

// TxDataConfig holds the fee schedule shared by every transaction variant.
type TxDataConfig struct {
	MinimumFee            uint64 `toml:"minimum_fee" mapstructure:"minimum_fee"`
	PoolFeeBytesPerToken  uint64 `toml:"pool_fee_bytes_per_token" mapstructure:"pool_fee_bytes_per_token"`
	MinerFeeBytesPerToken uint64 `toml:"miner_fee_bytes_per_token" mapstructure:"miner_fee_bytes_per_token"`
}

// NameConfig holds the naming subsystem's fixed-size parameters.
type NameConfig struct {
	SaltSize int `toml:"salt_size" mapstructure:"salt_size"`
}

// OracleConfig carries max_query_ttl_delta, an upper bound for relative
// oracle TTLs. It is loaded but not read by the oracle transaction
// variants: relative TTLs in OracleRegister, OracleQuery and OracleExtend
// are not capped by it.
type OracleConfig struct {
	MaxQueryTTLDelta uint64 `toml:"max_query_ttl_delta" mapstructure:"max_query_ttl_delta"`
}

// ConfigPaths holds the path to the main configuration file.
type ConfigPaths struct {
	Main string
}

// DefaultConfigPaths returns the default configuration file path.
func DefaultConfigPaths() ConfigPaths {
	return ConfigPaths{Main: "auricd.toml"}
}

// ConfigPathsFromDir returns configuration paths rooted at configDir.
func ConfigPathsFromDir(configDir string) ConfigPaths {
	return ConfigPaths{Main: filepath.Join(configDir, "auricd.toml")}
}

// GetConfigPath returns the path the config was loaded from.
func (c *Config) GetConfigPath() string { return c.configPath }

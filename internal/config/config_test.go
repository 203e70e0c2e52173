package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsOnlyWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(ConfigPaths{Main: filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)
	assert.Equal(t, "ed25519", cfg.SignatureScheme)
	assert.Equal(t, uint64(1), cfg.SpendTx.Version)
	assert.Equal(t, uint64(1), cfg.TxData.MinimumFee)
	assert.Equal(t, 16, cfg.Name.SaltSize)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auricd.toml")
	content := `
signature_scheme = "secp256k1"

[spend_tx]
version = 2

[tx_data]
minimum_fee = 5
pool_fee_bytes_per_token = 64
miner_fee_bytes_per_token = 32

[oracle]
max_query_ttl_delta = 1000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(ConfigPaths{Main: path})
	require.NoError(t, err)
	assert.Equal(t, "secp256k1", cfg.SignatureScheme)
	assert.Equal(t, uint64(2), cfg.SpendTx.Version)
	assert.Equal(t, uint64(5), cfg.TxData.MinimumFee)
	assert.Equal(t, uint64(64), cfg.TxData.PoolFeeBytesPerToken)
	assert.Equal(t, uint64(1000), cfg.Oracle.MaxQueryTTLDelta)
	assert.Equal(t, path, cfg.GetConfigPath())
}

func TestLoadConfig_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("AURICD_TX_DATA_MINIMUM_FEE", "9")

	cfg, err := LoadConfig(ConfigPaths{Main: filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.TxData.MinimumFee)
}

func TestValidateConfig_RejectsUnsupportedSignatureScheme(t *testing.T) {
	cfg := &Config{
		SignMaxSize:     1024,
		SignatureScheme: "rsa",
		SpendTx:         SpendTxConfig{Version: 1},
		TxData:          TxDataConfig{MinimumFee: 1},
		Name:            NameConfig{SaltSize: 16},
	}
	err := ValidateConfig(cfg)
	assert.ErrorContains(t, err, "signature_scheme")
}

func TestValidateConfig_RejectsZeroSaltSize(t *testing.T) {
	cfg := &Config{
		SignMaxSize:     1024,
		SignatureScheme: "ed25519",
		SpendTx:         SpendTxConfig{Version: 1},
		TxData:          TxDataConfig{MinimumFee: 1},
		Name:            NameConfig{SaltSize: 0},
	}
	err := ValidateConfig(cfg)
	assert.ErrorContains(t, err, "name.salt_size")
}

package config

import "github.com/spf13/viper"

// setDefaults sets the baked-in defaults for every field LoadConfig
// unmarshals, mirroring the tx package's own DefaultFeeConfig so a
// node started with no config file at all still runs.
func setDefaults(v *viper.Viper) {
	v.SetDefault("sign_max_size", 16384)
	v.SetDefault("signature_scheme", "ed25519")

	v.SetDefault("spend_tx.version", 1)

	v.SetDefault("tx_data.minimum_fee", 1)
	v.SetDefault("tx_data.pool_fee_bytes_per_token", 256)
	v.SetDefault("tx_data.miner_fee_bytes_per_token", 128)

	v.SetDefault("name.salt_size", 16)

	v.SetDefault("oracle.max_query_ttl_delta", 525600)

	v.SetDefault("database_path", "/var/lib/auricd/db")
	v.SetDefault("debug_logfile", "/var/log/auricd/debug.log")
}

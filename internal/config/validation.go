package config

import "fmt"

// ValidateConfig checks that a loaded Config is internally consistent
// enough to run a node against.
func ValidateConfig(cfg *Config) error {
	if cfg.SignMaxSize <= 0 {
		return fmt.Errorf("sign_max_size must be positive, got %d", cfg.SignMaxSize)
	}
	switch cfg.SignatureScheme {
	case "ed25519", "secp256k1":
	default:
		return fmt.Errorf("unsupported signature_scheme %q", cfg.SignatureScheme)
	}
	if cfg.SpendTx.Version == 0 {
		return fmt.Errorf("spend_tx.version must be positive")
	}
	if cfg.TxData.MinimumFee == 0 {
		return fmt.Errorf("tx_data.minimum_fee must be positive")
	}
	if cfg.Name.SaltSize <= 0 {
		return fmt.Errorf("name.salt_size must be positive, got %d", cfg.Name.SaltSize)
	}
	return nil
}

package tx

import "sync/atomic"

// FeeConfig holds the enumerated, protocol-wide fee parameters every
// variant's MinFee reads from. It is installed process-wide via
// SetFeeConfig rather than threaded through every call; until
// SetFeeConfig is called, DefaultFeeConfig is in effect.
type FeeConfig struct {
	MinimumFee          uint64
	PoolFeeBytesPerToken uint64
	MinerFeeBytesPerToken uint64
}

// DefaultFeeConfig mirrors a conservative testnet configuration: a flat
// 1-unit floor for ordinary transactions, rising only once a transaction's
// wire size passes a few hundred bytes.
var DefaultFeeConfig = FeeConfig{
	MinimumFee:            1,
	PoolFeeBytesPerToken:  256,
	MinerFeeBytesPerToken: 128,
}

var activeFeeConfig atomic.Pointer[FeeConfig]

func init() {
	cfg := DefaultFeeConfig
	activeFeeConfig.Store(&cfg)
}

// SetFeeConfig installs the fee configuration every variant's MinFee
// reads from.
func SetFeeConfig(cfg FeeConfig) {
	c := cfg
	activeFeeConfig.Store(&c)
}

func currentFeeConfig() FeeConfig {
	return *activeFeeConfig.Load()
}

// minFeeForRole computes floor(size/bytes_per_token) against the active
// configuration's per-role divisor, with RoleValidation accepting any
// fee (returns zero) and a floor of MinimumFee for pool/miner roles.
func minFeeForRole(size int, role Role) uint64 {
	if role == RoleValidation {
		return 0
	}
	cfg := currentFeeConfig()
	bytesPerToken := cfg.PoolFeeBytesPerToken
	if role == RoleMiner {
		bytesPerToken = cfg.MinerFeeBytesPerToken
	}
	if bytesPerToken == 0 {
		return cfg.MinimumFee
	}
	fee := uint64(size) / bytesPerToken
	if fee < cfg.MinimumFee {
		return cfg.MinimumFee
	}
	return fee
}

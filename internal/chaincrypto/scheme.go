package chaincrypto

import "errors"

// PublicKeySize is the fixed raw public key length the protocol uses,
// regardless of which scheme produced it (spec: "32 bytes").
const PublicKeySize = 32

// Scheme identifies a configured signature algorithm.
type Scheme int

const (
	SchemeEd25519 Scheme = iota
	SchemeSecp256k1
)

func (s Scheme) String() string {
	switch s {
	case SchemeEd25519:
		return "ed25519"
	case SchemeSecp256k1:
		return "secp256k1"
	default:
		return "unknown"
	}
}

// ErrSignatureTooLarge is returned by Signer.Sign when the produced
// signature would exceed the configured maximum size.
var ErrSignatureTooLarge = errors.New("chaincrypto: signature exceeds sign_max_size")

// ErrUnknownScheme is returned when a Scheme value has no registered provider.
var ErrUnknownScheme = errors.New("chaincrypto: unknown signature scheme")

// Provider is the pluggable signature algorithm surface. Both the Ed25519
// and secp256k1 implementations in this package satisfy it so the engine
// can be configured to use either without touching call sites.
type Provider interface {
	Scheme() Scheme
	// GenerateKeypair derives a deterministic keypair from a 32-byte seed;
	// a seed of any other length, including nil or empty, is ignored and
	// fresh randomness is drawn from crypto/rand.
	GenerateKeypair(seed []byte) (pub, priv []byte, err error)
	// Sign returns a detached signature over msg using priv.
	Sign(priv, msg []byte) (sig []byte, err error)
	// Verify reports whether sig is a valid detached signature over msg
	// under pub.
	Verify(pub, msg, sig []byte) bool
}

// Signer binds a Provider to a configured maximum signature size (the
// protocol's sign_max_size), rejecting oversized signatures at construction.
type Signer struct {
	provider   Provider
	maxSigSize int
}

// NewSigner builds a Signer for the given provider and maximum signature
// size in bytes.
func NewSigner(provider Provider, maxSigSize int) *Signer {
	return &Signer{provider: provider, maxSigSize: maxSigSize}
}

// Scheme returns the underlying provider's scheme.
func (s *Signer) Scheme() Scheme { return s.provider.Scheme() }

// GenerateKeypair delegates to the configured provider.
func (s *Signer) GenerateKeypair(seed []byte) (pub, priv []byte, err error) {
	return s.provider.GenerateKeypair(seed)
}

// Sign produces a detached signature over msg, failing if it would exceed
// the configured sign_max_size.
func (s *Signer) Sign(priv, msg []byte) ([]byte, error) {
	sig, err := s.provider.Sign(priv, msg)
	if err != nil {
		return nil, err
	}
	if s.maxSigSize > 0 && len(sig) > s.maxSigSize {
		return nil, ErrSignatureTooLarge
	}
	return sig, nil
}

// Verify reports whether sig verifies over msg under pub, also rejecting
// signatures longer than sign_max_size (a signature that long could never
// have been accepted by Sign on any node using this configuration).
func (s *Signer) Verify(pub, msg, sig []byte) bool {
	if s.maxSigSize > 0 && len(sig) > s.maxSigSize {
		return false
	}
	return s.provider.Verify(pub, msg, sig)
}

// ProviderFor returns the built-in Provider for a Scheme.
func ProviderFor(scheme Scheme) (Provider, error) {
	switch scheme {
	case SchemeEd25519:
		return Ed25519Provider{}, nil
	case SchemeSecp256k1:
		return Secp256k1Provider{}, nil
	default:
		return nil, ErrUnknownScheme
	}
}

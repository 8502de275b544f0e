package models

// IdentityRecord is the durable local state of a derived wallet identity.
// All fields are persisted in the client key-value store and restored on
// every login; see the identity package for the derivation rules.
type IdentityRecord struct {
	// Address is the derived wallet address ("0x" + 64 hex chars).
	Address string

	// Salt is the deterministic per-subject secret, hex encoded.
	Salt string

	// Randomness is a one-time session nonce, hex encoded.
	Randomness string

	// MaxEpoch is the last chain epoch the identity remains usable in.
	MaxEpoch uint64
}

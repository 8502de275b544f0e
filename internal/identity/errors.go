package identity

import "errors"

var (
	// ErrKeyNotFound reports a missing key in a [KeyValueStore].
	ErrKeyNotFound = errors.New("key not found")

	// ErrDerivationFailed reports that the identity could not be derived,
	// typically because the chain epoch query is unreachable. Derivation is
	// never retried automatically.
	ErrDerivationFailed = errors.New("identity derivation failed")

	// ErrNotInitialized reports that no complete identity is present in
	// local storage.
	ErrNotInitialized = errors.New("identity not initialized")
)

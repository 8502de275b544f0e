package chain

import "errors"

var (
	// ErrAccessDenied reports that a credential is expired or bound to a
	// different listing. A terminal policy outcome, never retried.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound reports a listing or pass id that does not exist on chain.
	ErrNotFound = errors.New("object not found on chain")

	// ErrSubmitterRequired reports a write call on a client constructed
	// without a wallet submitter.
	ErrSubmitterRequired = errors.New("no transaction submitter configured")
)

package blobstore

import "errors"

var (
	// ErrRateLimited reports a 429 or 503 from the store. It is retried
	// internally and only surfaces wrapped in an exhaustion error.
	ErrRateLimited = errors.New("blob store rate limited")

	// ErrUploadExhausted reports that every upload attempt failed. The last
	// underlying error is wrapped.
	ErrUploadExhausted = errors.New("blob upload retries exhausted")

	// ErrDownloadExhausted reports that every download attempt failed.
	ErrDownloadExhausted = errors.New("blob download retries exhausted")

	// ErrTransportUnreachable reports a failure below HTTP: DNS, connection
	// refused, origin restrictions. Distinguished from store-side errors so
	// the caller can switch to the relay path instead of retrying.
	ErrTransportUnreachable = errors.New("blob store unreachable")

	// ErrUnsupportedPlatform reports that the client cannot operate with the
	// given configuration. Raised at construction time, never at first use.
	ErrUnsupportedPlatform = errors.New("blob store client unsupported in this configuration")

	// ErrNoBlobID reports a 2xx store response that carried neither the
	// newly-created nor the already-certified branch.
	ErrNoBlobID = errors.New("no blob id in store response")
)

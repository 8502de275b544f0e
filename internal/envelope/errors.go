package envelope

import "errors"

var (
	// ErrMalformedEnvelope reports an envelope buffer that cannot be parsed:
	// shorter than the fixed-field minimum, or a declared contentID length
	// that would read past the end of the buffer.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrEncryptionFailed reports that the cipher primitive could not be
	// set up or the random source failed during encryption.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed reports an authentication-tag mismatch (tampered
	// ciphertext) or malformed key/IV material.
	ErrDecryptionFailed = errors.New("decryption failed")
)

package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	ivLen = 12

	// fixedFieldsLen is the byte count of everything except the contentID
	// and the ciphertext: the length prefix, the IV and the key field.
	fixedFieldsLen = 4 + ivLen + keyFieldLen
)

// Opened is the result of a successful Decrypt: the plaintext plus the
// contentID recovered from the envelope header.
type Opened struct {
	Content   []byte
	ContentID string
}

// Codec seals content into envelopes and opens them again. It is stateless
// apart from the configured escrow and is safe for concurrent use.
type Codec struct {
	escrow KeyEscrow
}

// NewCodec constructs a Codec with the given key escrow strategy.
func NewCodec(escrow KeyEscrow) *Codec {
	return &Codec{escrow: escrow}
}

// Encrypt seals content under a fresh random AES-256 key and a fresh 96-bit
// IV, binding it to contentID, and returns the serialized envelope. Neither
// key nor IV is ever reused across calls.
func (c *Codec) Encrypt(content []byte, contentID string) ([]byte, error) {
	key := make([]byte, keyFieldLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("%w: generate key: %v", ErrEncryptionFailed, err)
	}
	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("%w: generate iv: %v", ErrEncryptionFailed, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrEncryptionFailed, err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %v", ErrEncryptionFailed, err)
	}

	ciphertext := gcm.Seal(nil, iv, content, nil)

	field, err := c.escrow.Wrap(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	idBytes := []byte(contentID)
	out := make([]byte, 0, fixedFieldsLen+len(idBytes)+len(ciphertext))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(idBytes)))
	out = append(out, idBytes...)
	out = append(out, iv...)
	out = append(out, field...)
	out = append(out, ciphertext...)

	return out, nil
}

// Decrypt parses the envelope, recovers the content key through the escrow
// and opens the ciphertext. credentialID identifies the access pass the
// caller is decrypting under; the codec does not check it. Authorization
// against the contentID must already have happened (see the access package).
//
// Returns ErrMalformedEnvelope for buffers that cannot be parsed and
// ErrDecryptionFailed when the authentication tag does not verify.
func (c *Codec) Decrypt(env []byte, credentialID string) (Opened, error) {
	header, err := parseHeader(env)
	if err != nil {
		return Opened{}, err
	}

	key, err := c.escrow.Unwrap(header.keyField)
	if err != nil {
		return Opened{}, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return Opened{}, fmt.Errorf("%w: create cipher: %v", ErrDecryptionFailed, err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return Opened{}, fmt.Errorf("%w: create gcm: %v", ErrDecryptionFailed, err)
	}

	content, err := gcm.Open(nil, header.iv, header.ciphertext, nil)
	if err != nil {
		// Auth-tag mismatch: tampered ciphertext or wrong key material.
		return Opened{}, fmt.Errorf("%w: open: %v", ErrDecryptionFailed, err)
	}

	return Opened{Content: content, ContentID: header.contentID}, nil
}

// ContentID extracts only the contentID from an envelope without decrypting
// it. The access protocol uses this to run the authorization check before
// any key material is touched.
func ContentID(env []byte) (string, error) {
	header, err := parseHeader(env)
	if err != nil {
		return "", err
	}
	return header.contentID, nil
}

type header struct {
	contentID  string
	iv         []byte
	keyField   []byte
	ciphertext []byte
}

// parseHeader splits an envelope buffer into its fields, validating every
// length before slicing so a hostile buffer can never read out of bounds.
func parseHeader(env []byte) (header, error) {
	if len(env) < fixedFieldsLen {
		return header{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedEnvelope, len(env), fixedFieldsLen)
	}

	idLen := binary.LittleEndian.Uint32(env[:4])
	if uint64(idLen) > uint64(len(env)-fixedFieldsLen) {
		return header{}, fmt.Errorf("%w: declared contentID length %d exceeds buffer", ErrMalformedEnvelope, idLen)
	}

	offset := 4
	contentID := string(env[offset : offset+int(idLen)])
	offset += int(idLen)

	iv := env[offset : offset+ivLen]
	offset += ivLen

	keyField := env[offset : offset+keyFieldLen]
	offset += keyFieldLen

	return header{
		contentID:  contentID,
		iv:         iv,
		keyField:   keyField,
		ciphertext: env[offset:],
	}, nil
}

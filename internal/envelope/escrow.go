package envelope

import "fmt"

// keyFieldLen is the size of the envelope's key field. It matches the raw
// AES-256 key size so the inline and reference escrow variants share one
// frame layout.
const keyFieldLen = 32

//go:generate mockgen -source=escrow.go -destination=../mock/key_escrow_mock.go -package=mock

// KeyEscrow decides what is written into the envelope's 32-byte key field
// and how the content key is recovered from it.
//
// Wrap is called during encryption with the freshly generated content key;
// Unwrap is called during decryption with the stored field after the caller
// has cleared authorization. Implementations that hold the key externally
// (threshold shares) are expected to contact their key servers in Unwrap.
type KeyEscrow interface {
	// Wrap converts the raw content key into the 32-byte key field value.
	Wrap(key []byte) ([]byte, error)

	// Unwrap recovers the raw content key from the stored key field.
	Unwrap(field []byte) ([]byte, error)
}

// InlineEscrow stores the raw content key directly in the envelope. Anyone
// holding the envelope bytes can decrypt them; access control rests entirely
// on the authorization check performed before Unwrap is reached.
type InlineEscrow struct{}

// NewInlineEscrow returns the pass-through escrow used by the base design.
func NewInlineEscrow() InlineEscrow { return InlineEscrow{} }

// Wrap implements [KeyEscrow]. The key is stored as-is.
func (InlineEscrow) Wrap(key []byte) ([]byte, error) {
	if len(key) != keyFieldLen {
		return nil, fmt.Errorf("wrap key: invalid key length %d", len(key))
	}
	out := make([]byte, keyFieldLen)
	copy(out, key)
	return out, nil
}

// Unwrap implements [KeyEscrow]. The field is the key.
func (InlineEscrow) Unwrap(field []byte) ([]byte, error) {
	if len(field) != keyFieldLen {
		return nil, fmt.Errorf("unwrap key: invalid field length %d", len(field))
	}
	out := make([]byte, keyFieldLen)
	copy(out, field)
	return out, nil
}

package envelope

import (
	"strings"

	"github.com/google/uuid"
)

// Policy identifies the deployed on-chain authorization function that sealed
// content is bound to. The chain's key-release check calls
// {PackageID}::{ModuleName}::{ApproveFunction} to decide whether a credential
// may decrypt a given contentID.
type Policy struct {
	PackageID       string
	ModuleName      string
	ApproveFunction string
}

// Prefix returns the fixed "{package}::{module}::{function}::" prefix every
// contentID minted under this policy starts with.
func (p Policy) Prefix() string {
	return p.PackageID + "::" + p.ModuleName + "::" + p.ApproveFunction + "::"
}

// GenerateContentID mints a globally unique content identifier under the
// policy: the policy prefix followed by a 32-hex-char nonce (128 bits from
// the OS CSPRNG), so collisions are negligible.
func (p Policy) GenerateContentID() string {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	return p.Prefix() + nonce
}

// VerifyContentID reports whether id was minted under this policy. Envelopes
// whose id fails this check are bound to someone else's approval function
// and must be rejected before any decryption attempt.
func (p Policy) VerifyContentID(id string) bool {
	return strings.HasPrefix(id, p.Prefix())
}

package identity

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

// Fixed storage keys for the persisted identity fields.
const (
	keyEphemeralSeed = "ghostkey_ephemeral_keypair"
	keyAddress       = "ghostkey_address"
	keyUserSalt      = "ghostkey_user_salt"
	keyRandomness    = "ghostkey_randomness"
	keyMaxEpoch      = "ghostkey_max_epoch"
)

// saltNamespace domain-separates the per-subject salt from any other use of
// the subject identifier.
const saltNamespace = "ghostkey_salt_v1"

// validityEpochs is the fixed window a derived identity stays usable for.
const validityEpochs = 10

// Derived is the outcome of a derivation: the wallet address and whether a
// fresh keypair had to be generated for it.
type Derived struct {
	Address string
	IsNew   bool
}

// Deriver computes and persists wallet identities. All methods are keyed by
// whatever storage scope the injected [KeyValueStore] represents; the design
// assumes one active session per scope.
type Deriver struct {
	store  KeyValueStore
	epochs EpochSource
	log    *logger.Logger
}

// NewDeriver constructs a Deriver over the given storage and epoch source.
func NewDeriver(store KeyValueStore, epochs EpochSource, log *logger.Logger) *Deriver {
	return &Deriver{store: store, epochs: epochs, log: log}
}

// Derive returns the wallet address for the given login subject,
// idempotently: with intact persisted state the stored address is returned
// unchanged (IsNew=false); otherwise the identity is derived fresh and
// persisted before returning.
//
// subjectID may be empty, in which case the subject is recovered from the
// "sub" claim of loginToken (parsed without signature verification; the
// token was already verified by the login provider).
//
// The derivation itself is a pure function of (salt, ephemeral public key):
//
//	salt    = hex(argon2id(subject, saltNamespace))
//	address = "0x" + hex(SHA-256(salt || base64(publicKey)))
//
// The only remote dependency is a single epoch query bounding the identity's
// validity; if it is unreachable the derivation fails with
// [ErrDerivationFailed] and is not retried.
func (d *Deriver) Derive(ctx context.Context, subjectID, loginToken string) (Derived, error) {
	if addr, salt, err := d.storedIdentity(); err == nil && addr != "" && salt != "" {
		d.log.Debug().Str("address", addr).Msg("reusing persisted identity")
		return Derived{Address: addr, IsNew: false}, nil
	}

	subject, err := resolveSubject(subjectID, loginToken)
	if err != nil {
		return Derived{}, fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}

	pub, isNew, err := d.loadOrCreateKeypair()
	if err != nil {
		return Derived{}, fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}

	salt := deriveSalt(subject)
	address := deriveAddress(salt, pub)

	randomness, err := d.loadOrCreateRandomness()
	if err != nil {
		return Derived{}, fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}

	epoch, err := d.epochs.CurrentEpoch(ctx)
	if err != nil {
		return Derived{}, fmt.Errorf("%w: epoch query: %v", ErrDerivationFailed, err)
	}
	maxEpoch := epoch + validityEpochs

	record := models.IdentityRecord{
		Address:    address,
		Salt:       salt,
		Randomness: randomness,
		MaxEpoch:   maxEpoch,
	}
	if err := d.persist(record); err != nil {
		return Derived{}, fmt.Errorf("%w: persist: %v", ErrDerivationFailed, err)
	}

	d.log.Info().Str("address", address).Bool("new_wallet", isNew).Msg("identity derived")
	return Derived{Address: address, IsNew: isNew}, nil
}

// Record returns the persisted identity fields, or [ErrNotInitialized] when
// no complete identity is stored.
func (d *Deriver) Record() (models.IdentityRecord, error) {
	if !d.Initialized() {
		return models.IdentityRecord{}, ErrNotInitialized
	}

	addr, _ := d.store.Get(keyAddress)
	salt, _ := d.store.Get(keyUserSalt)
	randomness, _ := d.store.Get(keyRandomness)

	var maxEpoch uint64
	if raw, err := d.store.Get(keyMaxEpoch); err == nil {
		_, _ = fmt.Sscanf(raw, "%d", &maxEpoch)
	}

	return models.IdentityRecord{
		Address:    addr,
		Salt:       salt,
		Randomness: randomness,
		MaxEpoch:   maxEpoch,
	}, nil
}

// Keypair returns the persisted ephemeral signing keypair, or
// [ErrNotInitialized] if none has been stored yet.
func (d *Deriver) Keypair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	raw, err := d.store.Get(keyEphemeralSeed)
	if err != nil {
		return nil, nil, ErrNotInitialized
	}
	seed, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, nil, fmt.Errorf("%w: corrupt keypair material", ErrNotInitialized)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), priv, nil
}

// Clear deletes every persisted identity field. The next Derive call behaves
// as a first-time derivation.
func (d *Deriver) Clear() error {
	for _, key := range []string{keyEphemeralSeed, keyAddress, keyUserSalt, keyRandomness, keyMaxEpoch} {
		if err := d.store.Delete(key); err != nil {
			return fmt.Errorf("clear identity: %w", err)
		}
	}
	return nil
}

// Initialized reports whether address, salt and a loadable keypair are all
// present in storage.
func (d *Deriver) Initialized() bool {
	addr, salt, err := d.storedIdentity()
	if err != nil || addr == "" || salt == "" {
		return false
	}
	_, _, err = d.Keypair()
	return err == nil
}

func (d *Deriver) storedIdentity() (address, salt string, err error) {
	address, err = d.store.Get(keyAddress)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", "", nil
		}
		return "", "", err
	}
	salt, err = d.store.Get(keyUserSalt)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return address, "", nil
		}
		return "", "", err
	}
	return address, salt, nil
}

// loadOrCreateKeypair restores the persisted ephemeral keypair seed or
// generates and persists a fresh one. The boolean reports generation.
func (d *Deriver) loadOrCreateKeypair() (ed25519.PublicKey, bool, error) {
	if raw, err := d.store.Get(keyEphemeralSeed); err == nil {
		seed, decErr := base64.StdEncoding.DecodeString(raw)
		if decErr == nil && len(seed) == ed25519.SeedSize {
			priv := ed25519.NewKeyFromSeed(seed)
			return priv.Public().(ed25519.PublicKey), false, nil
		}
		d.log.Warn().Msg("persisted keypair is corrupt, regenerating")
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, false, fmt.Errorf("generate keypair: %w", err)
	}
	if err := d.store.Set(keyEphemeralSeed, base64.StdEncoding.EncodeToString(priv.Seed())); err != nil {
		return nil, false, fmt.Errorf("persist keypair: %w", err)
	}
	return pub, true, nil
}

func (d *Deriver) loadOrCreateRandomness() (string, error) {
	if v, err := d.store.Get(keyRandomness); err == nil && v != "" {
		return v, nil
	}

	buf := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("generate randomness: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (d *Deriver) persist(record models.IdentityRecord) error {
	entries := map[string]string{
		keyAddress:    record.Address,
		keyUserSalt:   record.Salt,
		keyRandomness: record.Randomness,
		keyMaxEpoch:   fmt.Sprintf("%d", record.MaxEpoch),
	}
	for key, value := range entries {
		if err := d.store.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// deriveSalt computes the deterministic per-subject salt with Argon2id under
// the fixed namespace. Same subject, same salt, always.
func deriveSalt(subject string) string {
	sum := argon2.IDKey([]byte(subject), []byte(saltNamespace), 1, 64*1024, 4, 32)
	return hex.EncodeToString(sum)
}

// deriveAddress computes the wallet address as a pure function of the salt
// and the ephemeral public key.
func deriveAddress(salt string, pub ed25519.PublicKey) string {
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte(base64.StdEncoding.EncodeToString(pub)))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// resolveSubject prefers the explicit subject id and falls back to the JWT's
// "sub" claim.
func resolveSubject(subjectID, loginToken string) (string, error) {
	if subjectID != "" {
		return subjectID, nil
	}
	if loginToken == "" {
		return "", errors.New("no login subject or token provided")
	}

	token, _, err := jwt.NewParser().ParseUnverified(loginToken, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("parse login token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("login token has no subject")
	}
	return sub, nil
}

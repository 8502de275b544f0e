// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package identity derives a deterministic wallet-style address from a login
// credential and keeps the derived state in durable local storage.
//
// The derivation is custody-free: no seed phrase is ever shown to the user.
// A persisted ephemeral keypair plus a per-subject salt fully determine the
// address, so repeating the derivation with intact local state always yields
// the same wallet.
package identity

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_mock.go -package=mock

// KeyValueStore is the durable string key-value capability the identity and
// provisioning logic persists through. Implementations: the SQLite-backed
// store for real clients, an in-memory map for tests.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// EpochSource answers the current epoch of the chain. The identity deriver
// uses it to bound how long a derived identity stays usable.
type EpochSource interface {
	CurrentEpoch(ctx context.Context) (uint64, error)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for the ghostkey
// CLI. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// Chain holds the ledger RPC endpoint and the deployed marketplace
	// policy coordinates.
	Chain Chain `envPrefix:"CHAIN_"`

	// Blob holds the blob store routes and transfer settings.
	Blob Blob `envPrefix:"BLOB_"`

	// Identity holds the local identity database settings.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Faucet holds the devnet gas faucet settings.
	Faucet Faucet `envPrefix:"FAUCET_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// RelayConfig is the top-level configuration container for the relay
// server.
type RelayConfig struct {
	// Server holds the relay's own listen address and timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Blob holds the upstream publisher route the relay forwards to.
	Blob Blob `envPrefix:"BLOB_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	JSONFilePath string `env:"CONFIG"`
}

// Chain holds the ledger connection and policy coordinates.
type Chain struct {
	// RPCURL is the JSON-RPC endpoint of the chain fullnode.
	// Env: CHAIN_RPC_URL
	RPCURL string `env:"RPC_URL"`

	// PackageID is the id of the deployed marketplace package.
	// Env: CHAIN_PACKAGE_ID
	PackageID string `env:"PACKAGE_ID"`

	// ModuleName is the marketplace module within the package.
	// Env: CHAIN_MODULE_NAME
	ModuleName string `env:"MODULE_NAME"`

	// ApproveFunction is the access approval entry point contentIDs are
	// bound to.
	// Env: CHAIN_APPROVE_FUNCTION
	ApproveFunction string `env:"APPROVE_FUNCTION"`
}

// Blob holds blob store routes and transfer settings.
type Blob struct {
	// PublisherURL is the write endpoint of the blob store.
	// Env: BLOB_PUBLISHER_URL
	PublisherURL string `env:"PUBLISHER_URL"`

	// AggregatorURL is the read endpoint of the blob store.
	// Env: BLOB_AGGREGATOR_URL
	AggregatorURL string `env:"AGGREGATOR_URL"`

	// RelayURL is the same-origin relay used when the direct publisher
	// route is unreachable. Optional.
	// Env: BLOB_RELAY_URL
	RelayURL string `env:"RELAY_URL"`

	// Epochs is the storage duration requested on upload, in chain epochs.
	// Zero means the publisher's default.
	// Env: BLOB_EPOCHS
	Epochs int `env:"EPOCHS"`

	// RequestTimeout bounds a single store round trip (e.g. "30s").
	// Env: BLOB_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Identity holds the local identity persistence settings.
type Identity struct {
	// DBPath is the path of the SQLite
	// database holding keys, salts and markers.
	// Env: IDENTITY_DB_PATH
	DBPath string `env:"DB_PATH"`
}

// Faucet holds devnet funding settings.
type Faucet struct {
	// URL is the faucet endpoint. Empty disables funding.
	// Env: FAUCET_URL
	URL string `env:"URL"`
}

// Server holds network and timeout settings for the relay's inbound side.
type Server struct {
	// HTTPAddress is the TCP address on which the relay listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetClientConfig loads, merges, and validates the ghostkey CLI
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *ClientConfig or an error if any source fails
// to load or the final config fails validation.
func GetClientConfig() (*ClientConfig, error) {
	return newClientBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// GetRelayConfig loads, merges, and validates the relay server
// configuration. Source priority matches [GetClientConfig].
func GetRelayConfig() (*RelayConfig, error) {
	return newRelayBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

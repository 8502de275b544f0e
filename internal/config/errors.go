// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidChainConfigs indicates missing chain settings (for example,
	// an empty RPC endpoint or package id).
	ErrInvalidChainConfigs = errors.New("invalid chain configuration")
	// ErrInvalidBlobConfigs indicates missing blob store routes.
	ErrInvalidBlobConfigs = errors.New("invalid blob store configuration")
	// ErrInvalidIdentityConfigs indicates missing identity storage settings.
	ErrInvalidIdentityConfigs = errors.New("invalid identity configuration")
	// ErrInvalidServerConfigs indicates missing relay server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)

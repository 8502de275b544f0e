// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package config

// validate checks that the final merged [ClientConfig] satisfies all
// invariants before it is used at startup.
func (cfg *ClientConfig) validate() error {
	if cfg.Chain.RPCURL == "" || cfg.Chain.PackageID == "" ||
		cfg.Chain.ModuleName == "" || cfg.Chain.ApproveFunction == "" {
		return ErrInvalidChainConfigs
	}

	if cfg.Blob.PublisherURL == "" || cfg.Blob.AggregatorURL == "" {
		return ErrInvalidBlobConfigs
	}

	if cfg.Identity.DBPath == "" {
		return ErrInvalidIdentityConfigs
	}

	return nil
}

func (cfg *RelayConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Blob.PublisherURL == "" {
		return ErrInvalidBlobConfigs
	}

	return nil
}

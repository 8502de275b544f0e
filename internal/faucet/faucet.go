// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package faucet requests devnet gas for freshly derived addresses and
// remembers which addresses were already provisioned so the faucet is hit
// at most once per identity.
package faucet

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/ghostkey-labs/go-ghostkey/internal/chain"
	"github.com/ghostkey-labs/go-ghostkey/internal/identity"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

// ErrFaucetRequest reports a faucet call that did not end in a 2xx status.
var ErrFaucetRequest = errors.New("faucet request failed")

const provisionedKeyPrefix = "ghostkey_faucet_provisioned_"

// Provisioner funds addresses through a faucet endpoint, keeping a durable
// per-address marker so repeated startups do not drain the faucet.
type Provisioner struct {
	http    *resty.Client
	store   identity.KeyValueStore
	querier chain.Querier
	log     *logger.Logger
}

// New builds a Provisioner posting to endpoint.
func New(endpoint string, store identity.KeyValueStore, querier chain.Querier, log *logger.Logger) *Provisioner {
	client := resty.New().SetBaseURL(endpoint)
	return &Provisioner{http: client, store: store, querier: querier, log: log}
}

// Provisioned reports whether the durable marker for address is set.
func (p *Provisioner) Provisioned(address string) bool {
	_, err := p.store.Get(provisionedKeyPrefix + address)
	return err == nil
}

// MarkProvisioned sets the durable marker for address.
func (p *Provisioner) MarkProvisioned(address string) error {
	return p.store.Set(provisionedKeyPrefix+address, "1")
}

// Request asks the faucet to fund address. It does not consult or set the
// provisioned marker; use EnsureFunded for the idempotent path.
func (p *Provisioner) Request(ctx context.Context, address string) error {
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"FixedAmountRequest": map[string]string{"recipient": address},
		}).
		Post("/gas")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFaucetRequest, err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: status %d", ErrFaucetRequest, resp.StatusCode())
	}
	return nil
}

// EnsureFunded funds address unless the marker is already set or the
// address already carries a positive balance. A successful request, or the
// discovery of an existing balance, sets the marker.
func (p *Provisioner) EnsureFunded(ctx context.Context, address string) error {
	if p.Provisioned(address) {
		return nil
	}

	balance, err := p.querier.Balance(ctx, address)
	if err != nil {
		return fmt.Errorf("check balance: %w", err)
	}
	if balance > 0 {
		p.log.Debug().Str("address", address).Uint64("balance", balance).Msg("address already funded")
		return p.MarkProvisioned(address)
	}

	if err := p.Request(ctx, address); err != nil {
		return err
	}
	p.log.Info().Str("address", address).Msg("faucet funding requested")
	return p.MarkProvisioned(address)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package chain is the client for the ledger GhostKey listings and access
// passes live on. Reads go over JSON-RPC; writes are shaped here but signed
// and submitted by an injected wallet integration, which keeps transaction
// construction outside the core.
package chain

import (
	"context"

	"github.com/ghostkey-labs/go-ghostkey/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/chain_mock.go -package=mock

// Querier answers chain-state questions that are not tied to the
// marketplace: the current epoch and account balances.
type Querier interface {
	CurrentEpoch(ctx context.Context) (uint64, error)
	Balance(ctx context.Context, address string) (uint64, error)
}

// Ledger exposes the marketplace records: listings and access passes.
// Submissions return the id of the created on-chain object.
type Ledger interface {
	// Listing fetches one listing by its object id.
	Listing(ctx context.Context, listingID string) (models.Listing, error)

	// Listings returns all listings, newest first.
	Listings(ctx context.Context) ([]models.Listing, error)

	// AccessPasses returns the access passes owned by address.
	AccessPasses(ctx context.Context, owner string) ([]models.AccessPass, error)

	// AccessPass fetches one access pass by its object id.
	AccessPass(ctx context.Context, passID string) (models.AccessPass, error)

	// CreateListing submits a listing-creation record.
	CreateListing(ctx context.Context, params models.ListingParams) (listingID string, err error)

	// RentAccess submits an access-rental record and returns the id of the
	// issued (expiring) access pass.
	RentAccess(ctx context.Context, params models.RentParams) (accessPassID string, err error)
}

// Oracle is the authorization oracle: the ledger-backed check deciding
// whether a credential currently authorizes decryption of a contentID.
type Oracle interface {
	// Authorize returns nil when credentialID is an unexpired access pass
	// whose listing is bound to contentID. Expiry or a listing mismatch is
	// reported as ErrAccessDenied, a policy outcome rather than a fault.
	Authorize(ctx context.Context, credentialID, contentID string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostkey-labs/go-ghostkey/internal/chain"
	"github.com/ghostkey-labs/go-ghostkey/internal/envelope"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

// memTransfer is an in-memory blob store assigning sequential ids.
type memTransfer struct {
	blobs map[string][]byte
}

func newMemTransfer() *memTransfer {
	return &memTransfer{blobs: map[string][]byte{}}
}

func (m *memTransfer) Upload(_ context.Context, data []byte) (string, error) {
	id := fmt.Sprintf("blob-%d", len(m.blobs)+1)
	m.blobs[id] = data
	return id, nil
}

func (m *memTransfer) UploadViaRelay(ctx context.Context, data []byte) (string, error) {
	return m.Upload(ctx, data)
}

func (m *memTransfer) Download(_ context.Context, blobID string) ([]byte, error) {
	data, ok := m.blobs[blobID]
	if !ok {
		return nil, fmt.Errorf("no such blob %q", blobID)
	}
	return data, nil
}

// memLedger is an in-memory marketplace issuing listings and passes.
type memLedger struct {
	listings map[string]models.Listing
	passes   map[string]models.AccessPass
	now      time.Time
}

func newMemLedger() *memLedger {
	return &memLedger{
		listings: map[string]models.Listing{},
		passes:   map[string]models.AccessPass{},
		now:      time.Now(),
	}
}

func (m *memLedger) Listing(_ context.Context, id string) (models.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return models.Listing{}, chain.ErrNotFound
	}
	return l, nil
}

func (m *memLedger) Listings(_ context.Context) ([]models.Listing, error) {
	out := make([]models.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		out = append(out, l)
	}
	return out, nil
}

func (m *memLedger) AccessPasses(_ context.Context, owner string) ([]models.AccessPass, error) {
	out := make([]models.AccessPass, 0, len(m.passes))
	for _, p := range m.passes {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memLedger) AccessPass(_ context.Context, id string) (models.AccessPass, error) {
	p, ok := m.passes[id]
	if !ok {
		return models.AccessPass{}, chain.ErrNotFound
	}
	return p, nil
}

func (m *memLedger) CreateListing(_ context.Context, params models.ListingParams) (string, error) {
	id := fmt.Sprintf("listing-%d", len(m.listings)+1)
	m.listings[id] = models.Listing{
		ID:         id,
		BlobID:     params.BlobID,
		ContentID:  params.ContentID,
		MimeType:   params.MimeType,
		Title:      params.Title,
		BasePrice:  params.BasePrice,
		PriceSlope: params.PriceSlope,
		IsActive:   true,
		CreatedAt:  m.now.UnixMilli(),
	}
	return id, nil
}

func (m *memLedger) RentAccess(_ context.Context, params models.RentParams) (string, error) {
	id := fmt.Sprintf("pass-%d", len(m.passes)+1)
	m.passes[id] = models.AccessPass{
		ID:            id,
		ListingID:     params.ListingID,
		Owner:         "0xrenter",
		ExpiresAt:     m.now.Add(time.Duration(params.DurationHours) * time.Hour).UnixMilli(),
		PurchasePrice: params.PaymentAmount,
	}
	return id, nil
}

func (m *memLedger) expirePass(id string) {
	p := m.passes[id]
	p.ExpiresAt = m.now.Add(-time.Minute).UnixMilli()
	m.passes[id] = p
}

// TestPublishRentViewScenario walks the whole marketplace flow against
// in-memory infrastructure: publish, rent, view, then view again after the
// pass expires.
func TestPublishRentViewScenario(t *testing.T) {
	store := newMemTransfer()
	ledger := newMemLedger()
	codec := envelope.NewCodec(envelope.NewInlineEscrow())
	oracle := chain.NewLedgerOracle(ledger, func() time.Time { return ledger.now }, logger.Nop())
	log := logger.Nop()

	uploads := NewUploadService(codec, testPolicy, store, ledger, log)
	rentals := NewRentalService(ledger, log)
	views := NewViewService(codec, testPolicy, oracle, store, ledger, log)

	ctx := context.Background()

	receipt, err := uploads.Upload(ctx, UploadRequest{
		Content:    []byte("hello-test"),
		MimeType:   "text/plain",
		Title:      "greeting",
		BasePrice:  100,
		PriceSlope: 10,
	})
	require.NoError(t, err)

	rent, err := rentals.Rent(ctx, RentRequest{
		ListingID:     receipt.ListingID,
		DurationHours: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(200), rent.PaymentAmount)

	result, err := views.View(ctx, ViewRequest{
		ListingID:    receipt.ListingID,
		AccessPassID: rent.AccessPassID,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello-test"), result.Content)
	assert.Equal(t, "text/plain", result.MimeType)

	// Once the pass expires the same request is denied at the
	// authorization stage, before any decryption.
	ledger.expirePass(rent.AccessPassID)

	_, err = views.View(ctx, ViewRequest{
		ListingID:    receipt.ListingID,
		AccessPassID: rent.AccessPassID,
	})
	require.ErrorIs(t, err, chain.ErrAccessDenied)
	assert.Equal(t, models.StageAuthorize, StageOf(err))
}

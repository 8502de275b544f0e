// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package blobstore provides the client for the content-addressed blob store
// that GhostKey envelopes are published to and fetched from.
//
// The store deduplicates by content: writing the same bytes twice may answer
// with the original blob id instead of a fresh one. Both outcomes are
// success. Transient store conditions (429, 503) are retried with the
// canonical backoff policy from the retry package; everything else fails
// fast. Transport-level failures are mapped to [ErrTransportUnreachable] so
// callers can fall back to the same-origin relay.
package blobstore

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/blob_store_mock.go -package=mock

// BlobStore is the transfer interface the service layer depends on.
// Implementations must be safe for use by concurrent transfers; retries
// within one logical transfer are strictly sequential.
type BlobStore interface {
	// Upload writes data to the store and returns its blob id. Identical
	// bytes may yield the id of a previously certified blob.
	Upload(ctx context.Context, data []byte) (string, error)

	// Download fetches the raw bytes of the given blob id.
	Download(ctx context.Context, blobID string) ([]byte, error)
}

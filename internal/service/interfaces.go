// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package service orchestrates the publish, rent and view flows: it wires
// the envelope codec, the blob store, the chain ledger and the access
// protocol into the operations the CLI exposes.
package service

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/transfer_mock.go -package=mock

// Transfer is the blob transfer capability the services need. It extends
// the plain store contract with the relay path used when the browser-grade
// direct route is unreachable.
type Transfer interface {
	// Upload writes data to the store and returns its blob id.
	Upload(ctx context.Context, data []byte) (string, error)

	// UploadViaRelay writes data through the same-origin relay.
	UploadViaRelay(ctx context.Context, data []byte) (string, error)

	// Download fetches the raw bytes of the given blob id.
	Download(ctx context.Context, blobID string) ([]byte, error)
}

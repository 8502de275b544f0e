// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ghostkey-labs/go-ghostkey/internal/blobstore"
	"github.com/ghostkey-labs/go-ghostkey/internal/envelope"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/internal/mock"
	"github.com/ghostkey-labs/go-ghostkey/internal/validators"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

var testPolicy = envelope.Policy{
	PackageID:       "0xabc",
	ModuleName:      "marketplace",
	ApproveFunction: "seal_approve_access",
}

func newUploadService(t *testing.T) (*UploadService, *mock.MockTransfer, *mock.MockLedger) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := mock.NewMockTransfer(ctrl)
	ledger := mock.NewMockLedger(ctrl)
	codec := envelope.NewCodec(envelope.NewInlineEscrow())
	return NewUploadService(codec, testPolicy, store, ledger, logger.Nop()), store, ledger
}

func TestUploadHappyPath(t *testing.T) {
	svc, store, ledger := newUploadService(t)

	var stored []byte
	store.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data []byte) (string, error) {
			stored = data
			return "abc123", nil
		})

	var listed models.ListingParams
	ledger.EXPECT().
		CreateListing(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.ListingParams) (string, error) {
			listed = p
			return "0xlisting", nil
		})

	receipt, err := svc.Upload(context.Background(), UploadRequest{
		Content:    []byte("hello-test"),
		MimeType:   "text/plain",
		Title:      "greeting",
		BasePrice:  100,
		PriceSlope: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123", receipt.BlobID)
	assert.Equal(t, "0xlisting", receipt.ListingID)
	assert.True(t, testPolicy.VerifyContentID(receipt.ContentID))

	// The listing binds the same contentID the envelope was sealed under.
	assert.Equal(t, receipt.ContentID, listed.ContentID)
	assert.Equal(t, "abc123", listed.BlobID)
	assert.Equal(t, uint64(100), listed.BasePrice)

	// What went to the store is the envelope, not the plaintext.
	gotID, err := envelope.ContentID(stored)
	require.NoError(t, err)
	assert.Equal(t, receipt.ContentID, gotID)
	assert.NotContains(t, string(stored[4+len(gotID)+12+32:]), "hello-test")
}

func TestUploadRejectsInvalidRequest(t *testing.T) {
	svc, _, _ := newUploadService(t)

	_, err := svc.Upload(context.Background(), UploadRequest{
		MimeType:  "text/plain",
		Title:     "t",
		BasePrice: 1,
	})
	require.ErrorIs(t, err, validators.ErrEmptyContent)

	_, err = svc.Upload(context.Background(), UploadRequest{
		Content:   []byte("x"),
		MimeType:  "not-a-mime",
		Title:     "t",
		BasePrice: 1,
	})
	require.ErrorIs(t, err, validators.ErrInvalidMimeType)
}

func TestUploadRelayFallback(t *testing.T) {
	svc, store, ledger := newUploadService(t)

	store.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return("", blobstore.ErrTransportUnreachable)
	store.EXPECT().
		UploadViaRelay(gomock.Any(), gomock.Any()).
		Return("abc123", nil)
	ledger.EXPECT().
		CreateListing(gomock.Any(), gomock.Any()).
		Return("0xlisting", nil)

	receipt, err := svc.Upload(context.Background(), UploadRequest{Content: []byte("x"), MimeType: "text/plain", Title: "t", BasePrice: 1})
	require.NoError(t, err)
	assert.Equal(t, "abc123", receipt.BlobID)
}

func TestUploadNoRelayFallbackOnStoreRejection(t *testing.T) {
	svc, store, _ := newUploadService(t)

	store.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return("", blobstore.ErrUploadExhausted)

	_, err := svc.Upload(context.Background(), UploadRequest{Content: []byte("x"), MimeType: "text/plain", Title: "t", BasePrice: 1})
	require.ErrorIs(t, err, blobstore.ErrUploadExhausted)
	assert.Equal(t, models.StageUpload, StageOf(err))
}

func TestUploadListingFailureIsStageTagged(t *testing.T) {
	svc, store, ledger := newUploadService(t)

	store.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("abc123", nil)
	ledger.EXPECT().
		CreateListing(gomock.Any(), gomock.Any()).
		Return("", assert.AnError)

	_, err := svc.Upload(context.Background(), UploadRequest{Content: []byte("x"), MimeType: "text/plain", Title: "t", BasePrice: 1})
	require.Error(t, err)
	assert.Equal(t, models.StageListing, StageOf(err))
}

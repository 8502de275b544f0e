// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ghostkey-labs/go-ghostkey/internal/chain"
	"github.com/ghostkey-labs/go-ghostkey/internal/envelope"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/internal/mock"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

type viewFixture struct {
	svc    *ViewService
	store  *mock.MockTransfer
	ledger *mock.MockLedger
	oracle *mock.MockOracle
}

func newViewFixture(t *testing.T) viewFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := viewFixture{
		store:  mock.NewMockTransfer(ctrl),
		ledger: mock.NewMockLedger(ctrl),
		oracle: mock.NewMockOracle(ctrl),
	}
	codec := envelope.NewCodec(envelope.NewInlineEscrow())
	f.svc = NewViewService(codec, testPolicy, f.oracle, f.store, f.ledger, logger.Nop())
	return f
}

func sealed(t *testing.T, content []byte) (env []byte, contentID string) {
	t.Helper()

	codec := envelope.NewCodec(envelope.NewInlineEscrow())
	contentID = testPolicy.GenerateContentID()
	env, err := codec.Encrypt(content, contentID)
	require.NoError(t, err)
	return env, contentID
}

func TestViewHappyPath(t *testing.T) {
	f := newViewFixture(t)
	env, contentID := sealed(t, []byte("hello-test"))

	f.ledger.EXPECT().
		Listing(gomock.Any(), "0xlisting").
		Return(models.Listing{ID: "0xlisting", BlobID: "abc123", ContentID: contentID, MimeType: "text/plain"}, nil)
	f.store.EXPECT().
		Download(gomock.Any(), "abc123").
		Return(env, nil)
	f.oracle.EXPECT().
		Authorize(gomock.Any(), "pass-1", contentID).
		Return(nil)

	res, err := f.svc.View(context.Background(), ViewRequest{ListingID: "0xlisting", AccessPassID: "pass-1"})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello-test"), res.Content)
	assert.Equal(t, "text/plain", res.MimeType)
}

func TestViewExpiredPassDeniedBeforeDecrypt(t *testing.T) {
	f := newViewFixture(t)
	env, contentID := sealed(t, []byte("hello-test"))

	f.ledger.EXPECT().
		Listing(gomock.Any(), "0xlisting").
		Return(models.Listing{ID: "0xlisting", BlobID: "abc123", ContentID: contentID}, nil)
	f.store.EXPECT().
		Download(gomock.Any(), "abc123").
		Return(env, nil)
	f.oracle.EXPECT().
		Authorize(gomock.Any(), "expired-pass", contentID).
		Return(chain.ErrAccessDenied)

	_, err := f.svc.View(context.Background(), ViewRequest{ListingID: "0xlisting", AccessPassID: "expired-pass"})
	require.ErrorIs(t, err, chain.ErrAccessDenied)
	assert.Equal(t, models.StageAuthorize, StageOf(err))
}

func TestViewDownloadFailureIsStageTagged(t *testing.T) {
	f := newViewFixture(t)

	f.ledger.EXPECT().
		Listing(gomock.Any(), "0xlisting").
		Return(models.Listing{ID: "0xlisting", BlobID: "abc123"}, nil)
	f.store.EXPECT().
		Download(gomock.Any(), "abc123").
		Return(nil, assert.AnError)

	_, err := f.svc.View(context.Background(), ViewRequest{ListingID: "0xlisting", AccessPassID: "pass-1"})
	require.Error(t, err)
	assert.Equal(t, models.StageDownload, StageOf(err))
}

func TestViewTamperedEnvelopeIsDecryptStage(t *testing.T) {
	f := newViewFixture(t)
	env, contentID := sealed(t, []byte("hello-test"))
	env[len(env)-1] ^= 0x01

	f.ledger.EXPECT().
		Listing(gomock.Any(), "0xlisting").
		Return(models.Listing{ID: "0xlisting", BlobID: "abc123", ContentID: contentID}, nil)
	f.store.EXPECT().
		Download(gomock.Any(), "abc123").
		Return(env, nil)
	f.oracle.EXPECT().
		Authorize(gomock.Any(), "pass-1", contentID).
		Return(nil)

	_, err := f.svc.View(context.Background(), ViewRequest{ListingID: "0xlisting", AccessPassID: "pass-1"})
	require.ErrorIs(t, err, envelope.ErrDecryptionFailed)
	assert.Equal(t, models.StageDecrypt, StageOf(err))
}

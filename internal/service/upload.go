// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package service

import (
	"context"
	"errors"

	"github.com/ghostkey-labs/go-ghostkey/internal/blobstore"
	"github.com/ghostkey-labs/go-ghostkey/internal/chain"
	"github.com/ghostkey-labs/go-ghostkey/internal/envelope"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/internal/validators"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

// UploadRequest carries everything needed to publish one piece of content.
type UploadRequest struct {
	Content     []byte
	MimeType    string
	Title       string
	Description string
	BasePrice   uint64
	PriceSlope  uint64
}

// UploadReceipt reports the identifiers minted during a publish.
type UploadReceipt struct {
	ContentID string
	BlobID    string
	ListingID string
}

// UploadService publishes content: seal it into an envelope, store the
// envelope, list it on the chain.
type UploadService struct {
	codec  *envelope.Codec
	policy envelope.Policy
	store  Transfer
	ledger chain.Ledger
	valid  validators.Validator
	log    *logger.Logger
}

// NewUploadService wires an UploadService.
func NewUploadService(codec *envelope.Codec, policy envelope.Policy, store Transfer, ledger chain.Ledger, log *logger.Logger) *UploadService {
	return &UploadService{
		codec:  codec,
		policy: policy,
		store:  store,
		ledger: ledger,
		valid:  validators.NewMarketplaceValidator(),
		log:    log,
	}
}

// Upload runs the publish flow. Errors are stage-tagged; the content key
// never leaves the envelope, so a failed upload leaks nothing.
//
// When the direct publisher route is unreachable at the transport level the
// upload falls back to the same-origin relay once. Store-level rejections
// (quota, rate limit exhaustion) do not trigger the fallback.
func (s *UploadService) Upload(ctx context.Context, req UploadRequest) (UploadReceipt, error) {
	if err := s.valid.Validate(ctx, validators.UploadFields{
		Content:   req.Content,
		MimeType:  req.MimeType,
		Title:     req.Title,
		BasePrice: req.BasePrice,
	}); err != nil {
		return UploadReceipt{}, err
	}

	contentID := s.policy.GenerateContentID()

	env, err := s.codec.Encrypt(req.Content, contentID)
	if err != nil {
		return UploadReceipt{}, stageErr(models.StageEncrypt, err)
	}
	s.log.Debug().Str("content_id", contentID).Int("envelope_bytes", len(env)).Msg("content sealed")

	blobID, err := s.store.Upload(ctx, env)
	if errors.Is(err, blobstore.ErrTransportUnreachable) {
		s.log.Warn().Str("content_id", contentID).Msg("publisher unreachable, retrying via relay")
		blobID, err = s.store.UploadViaRelay(ctx, env)
	}
	if err != nil {
		return UploadReceipt{}, stageErr(models.StageUpload, err)
	}

	listingID, err := s.ledger.CreateListing(ctx, models.ListingParams{
		ContentID:   contentID,
		BlobID:      blobID,
		MimeType:    req.MimeType,
		Title:       req.Title,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		PriceSlope:  req.PriceSlope,
	})
	if err != nil {
		return UploadReceipt{}, stageErr(models.StageListing, err)
	}

	s.log.Info().
		Str("content_id", contentID).
		Str("blob_id", blobID).
		Str("listing_id", listingID).
		Msg("content published")

	return UploadReceipt{ContentID: contentID, BlobID: blobID, ListingID: listingID}, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package service

import (
	"context"
	"errors"

	"github.com/ghostkey-labs/go-ghostkey/internal/access"
	"github.com/ghostkey-labs/go-ghostkey/internal/chain"
	"github.com/ghostkey-labs/go-ghostkey/internal/envelope"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/internal/validators"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

// ViewRequest identifies what to view and under which credential.
type ViewRequest struct {
	ListingID    string
	AccessPassID string
}

// ViewResult is the decrypted content plus how to render it.
type ViewResult struct {
	Content  []byte
	MimeType string
}

// ViewService resolves a listing, fetches its envelope and runs the access
// protocol to recover the plaintext.
type ViewService struct {
	codec  *envelope.Codec
	policy envelope.Policy
	oracle chain.Oracle
	store  Transfer
	ledger chain.Ledger
	valid  validators.Validator
	log    *logger.Logger
}

// NewViewService wires a ViewService.
func NewViewService(codec *envelope.Codec, policy envelope.Policy, oracle chain.Oracle, store Transfer, ledger chain.Ledger, log *logger.Logger) *ViewService {
	return &ViewService{
		codec:  codec,
		policy: policy,
		oracle: oracle,
		store:  store,
		ledger: ledger,
		valid:  validators.NewMarketplaceValidator(),
		log:    log,
	}
}

// View runs the view flow. Authorization happens before any decryption; a
// denied or expired pass never reaches the codec. Errors are stage-tagged.
func (s *ViewService) View(ctx context.Context, req ViewRequest) (ViewResult, error) {
	if err := s.valid.Validate(ctx, validators.ViewFields{
		ListingID:    req.ListingID,
		AccessPassID: req.AccessPassID,
	}); err != nil {
		return ViewResult{}, err
	}

	listing, err := s.ledger.Listing(ctx, req.ListingID)
	if err != nil {
		return ViewResult{}, stageErr(models.StageDownload, err)
	}

	env, err := s.store.Download(ctx, listing.BlobID)
	if err != nil {
		return ViewResult{}, stageErr(models.StageDownload, err)
	}

	sess := access.NewSession(s.codec, s.policy, s.oracle, s.log)
	res, err := sess.Request(ctx, env, req.AccessPassID)
	if err != nil {
		stage := models.StageAuthorize
		if errors.Is(err, envelope.ErrDecryptionFailed) || errors.Is(err, envelope.ErrMalformedEnvelope) {
			stage = models.StageDecrypt
		}
		return ViewResult{}, stageErr(stage, err)
	}

	s.log.Debug().
		Str("listing_id", listing.ID).
		Str("content_id", res.ContentID).
		Str("mime_type", listing.MimeType).
		Msg("content decrypted")

	return ViewResult{Content: res.Content, MimeType: listing.MimeType}, nil
}

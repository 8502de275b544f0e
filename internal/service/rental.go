// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghostkey-labs/go-ghostkey/internal/chain"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/internal/validators"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

// ErrPriceAboveCap reports a quoted price above the renter's cap; the
// rental was not submitted.
var ErrPriceAboveCap = errors.New("current price above max price")

// RentRequest asks to rent access to a listing. MaxPrice of zero means
// "accept the quoted price".
type RentRequest struct {
	ListingID     string
	DurationHours uint64
	MaxPrice      uint64
}

// RentReceipt reports the issued pass and what was actually paid.
type RentReceipt struct {
	AccessPassID  string
	PricePerHour  uint64
	PaymentAmount uint64
}

// RentalService quotes the demand-curve price of a listing and submits
// access rentals.
type RentalService struct {
	ledger chain.Ledger
	valid  validators.Validator
	log    *logger.Logger
}

// NewRentalService wires a RentalService.
func NewRentalService(ledger chain.Ledger, log *logger.Logger) *RentalService {
	return &RentalService{ledger: ledger, valid: validators.NewMarketplaceValidator(), log: log}
}

// Quote returns the current per-hour price of the listing.
func (s *RentalService) Quote(ctx context.Context, listingID string) (uint64, error) {
	listing, err := s.ledger.Listing(ctx, listingID)
	if err != nil {
		return 0, err
	}
	return listing.CurrentPrice(), nil
}

// Rent quotes the listing and submits the rental. The chain re-checks the
// cap; the local check only saves a doomed submission when the quote is
// already above MaxPrice.
func (s *RentalService) Rent(ctx context.Context, req RentRequest) (RentReceipt, error) {
	if err := s.valid.Validate(ctx, validators.RentFields{
		ListingID:     req.ListingID,
		DurationHours: req.DurationHours,
	}); err != nil {
		return RentReceipt{}, err
	}

	listing, err := s.ledger.Listing(ctx, req.ListingID)
	if err != nil {
		return RentReceipt{}, err
	}

	price := listing.CurrentPrice()
	maxPrice := req.MaxPrice
	if maxPrice == 0 {
		maxPrice = price
	}
	if price > maxPrice {
		return RentReceipt{}, fmt.Errorf("%w: %d > %d", ErrPriceAboveCap, price, maxPrice)
	}

	payment := price * req.DurationHours
	passID, err := s.ledger.RentAccess(ctx, models.RentParams{
		ListingID:     req.ListingID,
		DurationHours: req.DurationHours,
		PaymentAmount: payment,
		MaxPrice:      maxPrice,
	})
	if err != nil {
		return RentReceipt{}, err
	}

	s.log.Info().
		Str("listing_id", req.ListingID).
		Str("access_pass_id", passID).
		Uint64("price_per_hour", price).
		Uint64("payment", payment).
		Msg("access rented")

	return RentReceipt{AccessPassID: passID, PricePerHour: price, PaymentAmount: payment}, nil
}

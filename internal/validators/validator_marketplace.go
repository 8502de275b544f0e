// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package validators

import (
	"context"
	"strings"
)

// Field names accepted by [MarketplaceValidator.Validate].
const (
	FieldContent      = "content"
	FieldMimeType     = "mime_type"
	FieldTitle        = "title"
	FieldBasePrice    = "base_price"
	FieldListingID    = "listing_id"
	FieldDuration     = "duration"
	FieldAccessPassID = "access_pass_id"
)

// UploadFields describes what an upload request must carry.
type UploadFields struct {
	Content   []byte
	MimeType  string
	Title     string
	BasePrice uint64
}

// RentFields describes what a rent request must carry.
type RentFields struct {
	ListingID     string
	DurationHours uint64
}

// ViewFields describes what a view request must carry.
type ViewFields struct {
	ListingID    string
	AccessPassID string
}

type MarketplaceValidator struct {
}

func NewMarketplaceValidator() Validator {
	return &MarketplaceValidator{}
}

func (v *MarketplaceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case UploadFields:
		return v.validateUpload(ctx, value, fields...)
	case *UploadFields:
		return v.validateUpload(ctx, *value, fields...)

	case RentFields:
		return v.validateRent(ctx, value, fields...)
	case *RentFields:
		return v.validateRent(ctx, *value, fields...)

	case ViewFields:
		return v.validateView(ctx, value, fields...)
	case *ViewFields:
		return v.validateView(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *MarketplaceValidator) validateUpload(_ context.Context, req UploadFields, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent, FieldMimeType, FieldTitle, FieldBasePrice}
	}

	for _, f := range fields {
		switch f {
		case FieldContent:
			if len(req.Content) == 0 {
				return ErrEmptyContent
			}
		case FieldMimeType:
			if !isValidMimeType(req.MimeType) {
				return ErrInvalidMimeType
			}
		case FieldTitle:
			if strings.TrimSpace(req.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldBasePrice:
			if req.BasePrice == 0 {
				return ErrInvalidBasePrice
			}
		}
	}

	return nil
}

func (v *MarketplaceValidator) validateRent(_ context.Context, req RentFields, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldListingID, FieldDuration}
	}

	for _, f := range fields {
		switch f {
		case FieldListingID:
			if req.ListingID == "" {
				return ErrEmptyListingID
			}
		case FieldDuration:
			if req.DurationHours == 0 {
				return ErrInvalidDuration
			}
		}
	}

	return nil
}

func (v *MarketplaceValidator) validateView(_ context.Context, req ViewFields, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldListingID, FieldAccessPassID}
	}

	for _, f := range fields {
		switch f {
		case FieldListingID:
			if req.ListingID == "" {
				return ErrEmptyListingID
			}
		case FieldAccessPassID:
			if req.AccessPassID == "" {
				return ErrEmptyAccessPassID
			}
		}
	}

	return nil
}

// isValidMimeType accepts "type/subtype" with a non-empty type and subtype.
func isValidMimeType(mt string) bool {
	parts := strings.Split(mt, "/")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

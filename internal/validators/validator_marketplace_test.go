// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	v := NewMarketplaceValidator()
	ctx := context.Background()

	valid := UploadFields{
		Content:   []byte("payload"),
		MimeType:  "image/png",
		Title:     "sunset",
		BasePrice: 100,
	}
	require.NoError(t, v.Validate(ctx, valid))
	require.NoError(t, v.Validate(ctx, &valid))

	tests := []struct {
		name    string
		mutate  func(*UploadFields)
		wantErr error
	}{
		{"empty content", func(f *UploadFields) { f.Content = nil }, ErrEmptyContent},
		{"bad mime", func(f *UploadFields) { f.MimeType = "png" }, ErrInvalidMimeType},
		{"empty mime subtype", func(f *UploadFields) { f.MimeType = "image/" }, ErrInvalidMimeType},
		{"blank title", func(f *UploadFields) { f.Title = "   " }, ErrEmptyTitle},
		{"zero price", func(f *UploadFields) { f.BasePrice = 0 }, ErrInvalidBasePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			assert.ErrorIs(t, v.Validate(ctx, f), tt.wantErr)
		})
	}
}

func TestValidateUploadSelectedFields(t *testing.T) {
	v := NewMarketplaceValidator()

	// Only the named field is checked.
	f := UploadFields{Content: []byte("x")}
	require.NoError(t, v.Validate(context.Background(), f, FieldContent))
	assert.ErrorIs(t, v.Validate(context.Background(), f, FieldTitle), ErrEmptyTitle)
}

func TestValidateRent(t *testing.T) {
	v := NewMarketplaceValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, RentFields{ListingID: "0xabc", DurationHours: 2}))
	assert.ErrorIs(t, v.Validate(ctx, RentFields{DurationHours: 2}), ErrEmptyListingID)
	assert.ErrorIs(t, v.Validate(ctx, RentFields{ListingID: "0xabc"}), ErrInvalidDuration)
}

func TestValidateView(t *testing.T) {
	v := NewMarketplaceValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, ViewFields{ListingID: "0xabc", AccessPassID: "0xpass"}))
	assert.ErrorIs(t, v.Validate(ctx, ViewFields{AccessPassID: "0xpass"}), ErrEmptyListingID)
	assert.ErrorIs(t, v.Validate(ctx, ViewFields{ListingID: "0xabc"}), ErrEmptyAccessPassID)
}

func TestValidateUnsupportedType(t *testing.T) {
	v := NewMarketplaceValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

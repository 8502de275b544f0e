package models

// Listing is an on-chain marketplace listing for one encrypted content blob.
//
// BlobID points at the stored envelope in the blob store; ContentID is the
// identifier the envelope was sealed under and is what access passes are
// checked against. Prices are expressed in the chain's smallest unit.
type Listing struct {
	// ID is the on-chain object id of the listing.
	ID string `json:"id"`

	// Seller is the address that created the listing.
	Seller string `json:"seller"`

	// BlobID is the content-addressed blob store id of the envelope.
	BlobID string `json:"blobId"`

	// ContentID is the seal identifier embedded in the envelope.
	ContentID string `json:"sealId"`

	// MimeType describes the decrypted payload (e.g. "image/png").
	MimeType string `json:"mimeType"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// BasePrice is the rental price floor per hour.
	BasePrice uint64 `json:"basePrice"`

	// PriceSlope is added to BasePrice once per currently active rental,
	// producing a simple demand curve.
	PriceSlope uint64 `json:"priceSlope"`

	ActiveRentals int    `json:"activeRentals"`
	TotalRevenue  uint64 `json:"totalRevenue"`
	IsActive      bool   `json:"isActive"`

	// CreatedAt is the listing creation time in unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// CurrentPrice returns the per-hour rental price given the listing's
// demand curve: base price plus slope times active rentals.
func (l Listing) CurrentPrice() uint64 {
	return l.BasePrice + l.PriceSlope*uint64(l.ActiveRentals)
}

// ListingParams carries the fields required to submit a new listing record.
type ListingParams struct {
	ContentID   string `json:"sealId"`
	BlobID      string `json:"blobId"`
	MimeType    string `json:"mimeType"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BasePrice   uint64 `json:"basePrice"`
	PriceSlope  uint64 `json:"priceSlope"`
}

// ListingCreatedEvent mirrors the chain event emitted when a listing is
// created. Field names follow the on-chain event JSON.
type ListingCreatedEvent struct {
	ListingID   string `json:"listing_id"`
	Seller      string `json:"seller"`
	BlobID      string `json:"blob_id"`
	SealID      string `json:"seal_id"`
	MimeType    string `json:"mime_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BasePrice   string `json:"base_price"`
	PriceSlope  string `json:"price_slope"`
}

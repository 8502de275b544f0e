package models

import "time"

// AccessPass is a time-bounded, ledger-issued proof of the right to decrypt
// the content behind one listing. The pass is owned and expired by the chain;
// this type is the client-side view of it.
type AccessPass struct {
	// ID is the on-chain object id of the pass.
	ID string `json:"id"`

	// ListingID is the listing this pass grants access to.
	ListingID string `json:"listingId"`

	// Owner is the address the pass was issued to.
	Owner string `json:"owner"`

	// ExpiresAt is the expiry instant in unix milliseconds.
	ExpiresAt int64 `json:"expiresAt"`

	// PurchasePrice is the amount paid for the rental.
	PurchasePrice uint64 `json:"purchasePrice"`
}

// Expired reports whether the pass is no longer valid at the given instant.
func (p AccessPass) Expired(now time.Time) bool {
	return p.ExpiresAt <= now.UnixMilli()
}

// RentParams carries the fields required to submit an access rental record.
type RentParams struct {
	ListingID     string `json:"listingId"`
	DurationHours uint64 `json:"durationHours"`
	PaymentAmount uint64 `json:"paymentAmount"`

	// MaxPrice caps the accepted per-hour price; the chain aborts the
	// rental if the demand curve moved above it since the quote.
	MaxPrice uint64 `json:"maxPrice"`
}

// AccessRentedEvent mirrors the chain event emitted when access is rented.
type AccessRentedEvent struct {
	ListingID     string `json:"listing_id"`
	AccessPassID  string `json:"access_pass_id"`
	Renter        string `json:"renter"`
	DurationHours string `json:"duration_hours"`
	PricePaid     string `json:"price_paid"`
	ExpiresAt     string `json:"expires_at"`
}

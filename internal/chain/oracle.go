package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

// LedgerOracle implements [Oracle] against a [Ledger]: a credential
// authorizes a contentID iff the pass it names is unexpired and its listing
// is bound to exactly that contentID.
type LedgerOracle struct {
	ledger Ledger
	now    func() time.Time
	log    *logger.Logger
}

// NewLedgerOracle constructs the oracle. now is the clock used for expiry
// checks; pass nil for time.Now.
func NewLedgerOracle(ledger Ledger, now func() time.Time, log *logger.Logger) *LedgerOracle {
	if now == nil {
		now = time.Now
	}
	return &LedgerOracle{ledger: ledger, now: now, log: log}
}

// Authorize implements [Oracle].
func (o *LedgerOracle) Authorize(ctx context.Context, credentialID, contentID string) error {
	pass, err := o.ledger.AccessPass(ctx, credentialID)
	if err != nil {
		return fmt.Errorf("fetch access pass: %w", err)
	}

	if pass.Expired(o.now()) {
		o.log.Debug().Str("pass_id", credentialID).Int64("expires_at", pass.ExpiresAt).Msg("access pass expired")
		return fmt.Errorf("%w: access pass expired", ErrAccessDenied)
	}

	listing, err := o.ledger.Listing(ctx, pass.ListingID)
	if err != nil {
		return fmt.Errorf("fetch listing: %w", err)
	}
	if listing.ContentID != contentID {
		o.log.Debug().
			Str("pass_id", credentialID).
			Str("listing_content_id", listing.ContentID).
			Str("requested_content_id", contentID).
			Msg("content id mismatch")
		return fmt.Errorf("%w: credential bound to a different content id", ErrAccessDenied)
	}

	return nil
}

package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

// rpcHandler answers JSON-RPC calls from a method→result table.
func rpcHandler(t *testing.T, results map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, ok := results[req.Method]
		if !ok {
			_, _ = w.Write([]byte(`{"error":{"code":-32601,"message":"method not found"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":` + result + `}`))
	}
}

func newTestChainClient(t *testing.T, srvURL string, submit Submitter) *Client {
	t.Helper()
	return NewClient(Config{
		RPCURL:     srvURL,
		PackageID:  "0xabc",
		ModuleName: "marketplace",
	}, submit, logger.Nop())
}

func TestCurrentEpoch(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]string{
		"suix_getLatestSuiSystemState": `{"epoch":"412"}`,
	}))
	defer srv.Close()

	c := newTestChainClient(t, srv.URL, nil)
	epoch, err := c.CurrentEpoch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, uint64(412), epoch)
}

func TestCurrentEpoch_RPCError(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, nil))
	defer srv.Close()

	c := newTestChainClient(t, srv.URL, nil)
	_, err := c.CurrentEpoch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "method not found")
}

func TestBalance(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]string{
		"suix_getBalance": `{"totalBalance":"5000000"}`,
	}))
	defer srv.Close()

	c := newTestChainClient(t, srv.URL, nil)
	balance, err := c.Balance(context.Background(), "0xowner")

	require.NoError(t, err)
	assert.Equal(t, uint64(5000000), balance)
}

func TestListing_ParsesMoveObjectFields(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]string{
		"sui_getObject": `{"data":{"objectId":"0xlisting","content":{"dataType":"moveObject","fields":{
			"seller":"0xseller","blob_id":"blob-1","seal_id":"0xabc::marketplace::seal_approve_access::aa",
			"mime_type":"image/png","title":"T","description":"D",
			"base_price":"1000","price_slope":"50","active_rentals":"2","total_revenue":"2100","is_active":true}}}}`,
	}))
	defer srv.Close()

	c := newTestChainClient(t, srv.URL, nil)
	listing, err := c.Listing(context.Background(), "0xlisting")

	require.NoError(t, err)
	assert.Equal(t, "0xseller", listing.Seller)
	assert.Equal(t, "blob-1", listing.BlobID)
	assert.Equal(t, uint64(1000), listing.BasePrice)
	assert.Equal(t, 2, listing.ActiveRentals)
	assert.True(t, listing.IsActive)
	assert.Equal(t, uint64(1100), listing.CurrentPrice(), "base + slope*active rentals")
}

func TestListing_NotFound(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]string{
		"sui_getObject": `{"data":null}`,
	}))
	defer srv.Close()

	c := newTestChainClient(t, srv.URL, nil)
	_, err := c.Listing(context.Background(), "0xmissing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccessPass_ParsesExpiry(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(t, map[string]string{
		"sui_getObject": `{"data":{"objectId":"0xpass","content":{"dataType":"moveObject","fields":{
			"listing_id":"0xlisting","owner":"0xme","expires_at":"1700000000000","purchase_price":"42"}}}}`,
	}))
	defer srv.Close()

	c := newTestChainClient(t, srv.URL, nil)
	pass, err := c.AccessPass(context.Background(), "0xpass")

	require.NoError(t, err)
	assert.Equal(t, "0xlisting", pass.ListingID)
	assert.Equal(t, int64(1700000000000), pass.ExpiresAt)
	assert.Equal(t, uint64(42), pass.PurchasePrice)
}

func TestCreateListing_IssuesMoveCallShape(t *testing.T) {
	var captured MoveCall
	submit := func(_ context.Context, call MoveCall) (string, error) {
		captured = call
		return "0xnew-listing", nil
	}

	c := newTestChainClient(t, "http://127.0.0.1:1", submit)
	id, err := c.CreateListing(context.Background(), models.ListingParams{
		ContentID:  "0xabc::marketplace::seal_approve_access::aa",
		BlobID:     "blob-1",
		MimeType:   "text/plain",
		Title:      "T",
		BasePrice:  1000,
		PriceSlope: 50,
	})

	require.NoError(t, err)
	assert.Equal(t, "0xnew-listing", id)
	assert.Equal(t, "0xabc::marketplace::create_listing", captured.Target)
	assert.Equal(t, "blob-1", captured.Args[1])
	assert.Equal(t, "1000", captured.Args[5], "u64 args travel as strings")
}

func TestRentAccess_WithoutSubmitter(t *testing.T) {
	c := newTestChainClient(t, "http://127.0.0.1:1", nil)

	_, err := c.RentAccess(context.Background(), models.RentParams{ListingID: "0xlisting"})
	assert.ErrorIs(t, err, ErrSubmitterRequired)
}

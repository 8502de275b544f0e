package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

// MoveCall is the shape of a write the core hands to the wallet layer:
// the fully qualified target function and its JSON-encoded arguments.
type MoveCall struct {
	Target string
	Args   []any
}

// Submitter signs and submits a MoveCall, returning the id of the object the
// call created. Wallet integration is out of the core's scope, so the
// implementation is injected.
type Submitter func(ctx context.Context, call MoveCall) (objectID string, err error)

// Config holds the chain endpoints and the deployed package coordinates.
type Config struct {
	// RPCURL is the JSON-RPC endpoint of a fullnode.
	RPCURL string
	// PackageID and ModuleName locate the marketplace module on chain.
	PackageID  string
	ModuleName string
	// Timeout bounds each RPC request.
	Timeout time.Duration
}

// Client implements [Querier] and [Ledger] over JSON-RPC. Safe for
// concurrent use; construct once and share.
type Client struct {
	http   *resty.Client
	cfg    Config
	submit Submitter
	log    *logger.Logger
}

// NewClient constructs a chain client. submit may be nil for read-only use;
// write calls then fail with [ErrSubmitterRequired].
func NewClient(cfg Config, submit Submitter, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.RPCURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Client{http: cli, cfg: cfg, submit: submit, log: log}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC request and unmarshals the result into out.
func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}).
		Post("/")
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("%s: http %d", method, resp.StatusCode())
	}

	var parsed rpcResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if parsed.Error != nil {
		return fmt.Errorf("%s: rpc error %d: %s", method, parsed.Error.Code, parsed.Error.Message)
	}
	if out != nil {
		if err := json.Unmarshal(parsed.Result, out); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

// CurrentEpoch implements [Querier].
func (c *Client) CurrentEpoch(ctx context.Context) (uint64, error) {
	var result struct {
		Epoch string `json:"epoch"`
	}
	if err := c.call(ctx, "suix_getLatestSuiSystemState", nil, &result); err != nil {
		return 0, err
	}
	epoch, err := strconv.ParseUint(result.Epoch, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse epoch %q: %w", result.Epoch, err)
	}
	return epoch, nil
}

// Balance implements [Querier].
func (c *Client) Balance(ctx context.Context, address string) (uint64, error) {
	var result struct {
		TotalBalance string `json:"totalBalance"`
	}
	if err := c.call(ctx, "suix_getBalance", []any{address}, &result); err != nil {
		return 0, err
	}
	balance, err := strconv.ParseUint(result.TotalBalance, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse balance %q: %w", result.TotalBalance, err)
	}
	return balance, nil
}

// objectResponse is the subset of sui_getObject we read.
type objectResponse struct {
	Data *struct {
		ObjectID string `json:"objectId"`
		Content  *struct {
			DataType string         `json:"dataType"`
			Fields   map[string]any `json:"fields"`
		} `json:"content"`
	} `json:"data"`
}

func (c *Client) object(ctx context.Context, id string) (map[string]any, error) {
	var result objectResponse
	err := c.call(ctx, "sui_getObject", []any{id, map[string]any{"showContent": true}}, &result)
	if err != nil {
		return nil, err
	}
	if result.Data == nil || result.Data.Content == nil || result.Data.Content.DataType != "moveObject" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return result.Data.Content.Fields, nil
}

// Listing implements [Ledger].
func (c *Client) Listing(ctx context.Context, listingID string) (models.Listing, error) {
	fields, err := c.object(ctx, listingID)
	if err != nil {
		return models.Listing{}, err
	}
	return listingFromFields(listingID, fields), nil
}

// Listings implements [Ledger]. Listings are discovered through the
// ListingCreated events of the deployed package, newest first, and hydrated
// from their current object state. Listings that fail to hydrate are
// skipped with a warning rather than failing the whole query.
func (c *Client) Listings(ctx context.Context) ([]models.Listing, error) {
	eventType := fmt.Sprintf("%s::%s::ListingCreated", c.cfg.PackageID, c.cfg.ModuleName)

	var result struct {
		Data []struct {
			ParsedJSON models.ListingCreatedEvent `json:"parsedJson"`
		} `json:"data"`
	}
	err := c.call(ctx, "suix_queryEvents",
		[]any{map[string]any{"MoveEventType": eventType}, nil, nil, true}, &result)
	if err != nil {
		return nil, err
	}

	listings := make([]models.Listing, 0, len(result.Data))
	for _, event := range result.Data {
		listing, err := c.Listing(ctx, event.ParsedJSON.ListingID)
		if err != nil {
			c.log.Warn().Err(err).Str("listing_id", event.ParsedJSON.ListingID).Msg("skipping unhydratable listing")
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// AccessPasses implements [Ledger].
func (c *Client) AccessPasses(ctx context.Context, owner string) ([]models.AccessPass, error) {
	passType := fmt.Sprintf("%s::%s::AccessPass", c.cfg.PackageID, c.cfg.ModuleName)

	var result struct {
		Data []objectResponse `json:"data"`
	}
	err := c.call(ctx, "suix_getOwnedObjects",
		[]any{owner, map[string]any{
			"filter":  map[string]any{"StructType": passType},
			"options": map[string]any{"showContent": true},
		}}, &result)
	if err != nil {
		return nil, err
	}

	passes := make([]models.AccessPass, 0, len(result.Data))
	for _, obj := range result.Data {
		if obj.Data == nil || obj.Data.Content == nil {
			continue
		}
		pass := passFromFields(obj.Data.ObjectID, obj.Data.Content.Fields)
		pass.Owner = owner
		passes = append(passes, pass)
	}
	return passes, nil
}

// AccessPass implements [Ledger].
func (c *Client) AccessPass(ctx context.Context, passID string) (models.AccessPass, error) {
	fields, err := c.object(ctx, passID)
	if err != nil {
		return models.AccessPass{}, err
	}
	return passFromFields(passID, fields), nil
}

// CreateListing implements [Ledger].
func (c *Client) CreateListing(ctx context.Context, params models.ListingParams) (string, error) {
	if c.submit == nil {
		return "", ErrSubmitterRequired
	}
	call := MoveCall{
		Target: fmt.Sprintf("%s::%s::create_listing", c.cfg.PackageID, c.cfg.ModuleName),
		Args: []any{
			params.ContentID, params.BlobID, params.MimeType,
			params.Title, params.Description,
			strconv.FormatUint(params.BasePrice, 10),
			strconv.FormatUint(params.PriceSlope, 10),
		},
	}
	return c.submit(ctx, call)
}

// RentAccess implements [Ledger].
func (c *Client) RentAccess(ctx context.Context, params models.RentParams) (string, error) {
	if c.submit == nil {
		return "", ErrSubmitterRequired
	}
	call := MoveCall{
		Target: fmt.Sprintf("%s::%s::rent_access_with_max_price", c.cfg.PackageID, c.cfg.ModuleName),
		Args: []any{
			params.ListingID,
			strconv.FormatUint(params.DurationHours, 10),
			strconv.FormatUint(params.PaymentAmount, 10),
			strconv.FormatUint(params.MaxPrice, 10),
		},
	}
	return c.submit(ctx, call)
}

// Move object fields arrive as strings for u64 values; tolerate numbers too.

func listingFromFields(id string, fields map[string]any) models.Listing {
	return models.Listing{
		ID:            id,
		Seller:        fieldString(fields, "seller"),
		BlobID:        fieldString(fields, "blob_id"),
		ContentID:     fieldString(fields, "seal_id"),
		MimeType:      fieldString(fields, "mime_type"),
		Title:         fieldString(fields, "title"),
		Description:   fieldString(fields, "description"),
		BasePrice:     fieldUint(fields, "base_price"),
		PriceSlope:    fieldUint(fields, "price_slope"),
		ActiveRentals: int(fieldUint(fields, "active_rentals")),
		TotalRevenue:  fieldUint(fields, "total_revenue"),
		IsActive:      fieldBool(fields, "is_active"),
	}
}

func passFromFields(id string, fields map[string]any) models.AccessPass {
	return models.AccessPass{
		ID:            id,
		ListingID:     fieldString(fields, "listing_id"),
		Owner:         fieldString(fields, "owner"),
		ExpiresAt:     int64(fieldUint(fields, "expires_at")),
		PurchasePrice: fieldUint(fields, "purchase_price"),
	}
}

func fieldString(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func fieldUint(fields map[string]any, key string) uint64 {
	switch v := fields[key].(type) {
	case string:
		n, _ := strconv.ParseUint(v, 10, 64)
		return n
	case float64:
		return uint64(v)
	default:
		return 0
	}
}

func fieldBool(fields map[string]any, key string) bool {
	if v, ok := fields[key].(bool); ok {
		return v
	}
	return false
}

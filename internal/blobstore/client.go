package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/internal/retry"
	"github.com/ghostkey-labs/go-ghostkey/models"
)

// Config holds the endpoints and transfer policy for a [Client].
type Config struct {
	// PublisherURL is the write endpoint (PUT {PublisherURL}/v1/blobs).
	PublisherURL string
	// AggregatorURL is the read endpoint (GET {AggregatorURL}/v1/blobs/{id}).
	AggregatorURL string
	// RelayURL, when set, is a same-origin relay accepting the same PUT as
	// the publisher. Used as a fallback when the publisher is unreachable.
	RelayURL string
	// StoreEpochs, when positive, is sent as the ?epochs= storage duration.
	StoreEpochs int
	// Timeout bounds each individual HTTP attempt.
	Timeout time.Duration
	// Retry is the backoff policy for 429/503 responses.
	Retry retry.Policy
}

// Client talks to the blob store over HTTP. Construct once and reuse: the
// embedded connection pool is safe for concurrent transfers and the rest of
// the struct is immutable configuration.
type Client struct {
	http       *resty.Client
	publisher  string
	aggregator string
	relay      string
	epochs     int
	policy     retry.Policy
	log        *logger.Logger
}

// New validates cfg and constructs a Client. Endpoint problems are surfaced
// here as [ErrUnsupportedPlatform] rather than on first use: a client that
// cannot reach a store in its environment should fail at wiring time.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.PublisherURL == "" && cfg.RelayURL == "" {
		return nil, fmt.Errorf("%w: no publisher or relay endpoint", ErrUnsupportedPlatform)
	}
	if cfg.AggregatorURL == "" {
		return nil, fmt.Errorf("%w: no aggregator endpoint", ErrUnsupportedPlatform)
	}
	for _, endpoint := range []string{cfg.PublisherURL, cfg.AggregatorURL, cfg.RelayURL} {
		if endpoint == "" {
			continue
		}
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return nil, fmt.Errorf("%w: bad endpoint %q: %v", ErrUnsupportedPlatform, endpoint, err)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.DefaultPolicy()
	}

	cli := resty.New().SetTimeout(cfg.Timeout)

	return &Client{
		http:       cli,
		publisher:  strings.TrimRight(cfg.PublisherURL, "/"),
		aggregator: strings.TrimRight(cfg.AggregatorURL, "/"),
		relay:      strings.TrimRight(cfg.RelayURL, "/"),
		epochs:     cfg.StoreEpochs,
		policy:     cfg.Retry,
		log:        log,
	}, nil
}

// Upload implements [BlobStore]. It PUTs data to the publisher and parses
// the tagged response; both the newly-created and the already-certified
// branches yield a usable blob id.
func (c *Client) Upload(ctx context.Context, data []byte) (string, error) {
	if c.publisher == "" {
		return c.UploadViaRelay(ctx, data)
	}
	blobID, err := c.put(ctx, c.uploadURL(c.publisher), data)
	if err != nil {
		return "", err
	}
	return blobID, nil
}

// UploadViaRelay uploads through the same-origin relay instead of the
// publisher. The relay forwards the PUT and returns the store's JSON
// unchanged, so the response handling is shared with Upload.
func (c *Client) UploadViaRelay(ctx context.Context, data []byte) (string, error) {
	if c.relay == "" {
		return "", fmt.Errorf("%w: no relay endpoint configured", ErrUnsupportedPlatform)
	}
	return c.put(ctx, c.uploadURL(c.relay), data)
}

// Download implements [BlobStore].
func (c *Client) Download(ctx context.Context, blobID string) ([]byte, error) {
	var body []byte

	err := retry.Do(ctx, c.attemptPolicy("download", blobID), func(ctx context.Context) error {
		resp, err := c.http.R().
			SetContext(ctx).
			Get(c.aggregator + "/v1/blobs/" + url.PathEscape(blobID))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransportUnreachable, err)
		}
		if err := classifyStatus(resp.StatusCode()); err != nil {
			return err
		}

		body = append([]byte(nil), resp.Body()...)
		return nil
	})
	if err != nil {
		if retry.IsTransient(err) {
			return nil, fmt.Errorf("%w: %v", ErrDownloadExhausted, err)
		}
		return nil, err
	}

	return body, nil
}

func (c *Client) put(ctx context.Context, target string, data []byte) (string, error) {
	var blobID string

	err := retry.Do(ctx, c.attemptPolicy("upload", target), func(ctx context.Context) error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/octet-stream").
			SetBody(data).
			Put(target)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransportUnreachable, err)
		}
		if err := classifyStatus(resp.StatusCode()); err != nil {
			return err
		}

		var parsed models.BlobUploadResponse
		if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
			return fmt.Errorf("decode store response: %w", err)
		}
		if parsed.BlobID() == "" {
			return ErrNoBlobID
		}

		blobID = parsed.BlobID()
		return nil
	})
	if err != nil {
		if retry.IsTransient(err) {
			return "", fmt.Errorf("%w: %v", ErrUploadExhausted, err)
		}
		return "", err
	}

	c.log.Debug().Str("blob_id", blobID).Msg("blob upload successful")
	return blobID, nil
}

func (c *Client) uploadURL(base string) string {
	target := base + "/v1/blobs"
	if c.epochs > 0 {
		target += "?epochs=" + strconv.Itoa(c.epochs)
	}
	return target
}

// attemptPolicy clones the configured policy with a debug hook logging each
// attempt, so retries are observable without blocking the caller.
func (c *Client) attemptPolicy(op, target string) retry.Policy {
	p := c.policy
	p.OnAttempt = func(attempt int) {
		if attempt > 1 {
			c.log.Debug().
				Str("op", op).
				Str("target", target).
				Int("attempt", attempt).
				Msg("retrying blob store request")
		}
	}
	return p
}

// classifyStatus maps an HTTP status to nil (2xx), a transient error
// (429/503, retried) or a fatal one (everything else).
func classifyStatus(code int) error {
	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return nil
	case code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable:
		return retry.Transient(fmt.Errorf("%w: http %d", ErrRateLimited, code))
	default:
		return fmt.Errorf("blob store http %d: %s", code, http.StatusText(code))
	}
}

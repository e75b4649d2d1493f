// Package wiki is a read-only client for the MediaWiki action API: category
// membership enumeration and bulk plain-text extraction.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wikifreq/internal/validation"
)

const (
	// DefaultEndpoint is the English Wikipedia action API.
	DefaultEndpoint = "https://en.wikipedia.org/w/api.php"

	// DefaultUserAgent identifies this client to the remote API.
	DefaultUserAgent = "wikifreq/1.0 (category word frequency)"

	// memberLimit is the practical per-request maximum for category listings.
	memberLimit = 500

	// extractBatchSize is deliberately conservative; extract limits vary by
	// prop and user rights.
	extractBatchSize = 20

	maxAttempts    = 5
	baseDelay      = 800 * time.Millisecond
	requestTimeout = 30 * time.Second
)

// Client issues requests against a single MediaWiki endpoint through a shared
// pooled HTTP client. It is safe to reuse across sequential requests; callers
// needing simultaneous use must synchronize externally.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	retryDelay time.Duration
}

// NewClient constructs a client for the given endpoint. Empty arguments fall
// back to the package defaults.
func NewClient(endpoint, userAgent string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		endpoint:  endpoint,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		retryDelay: baseDelay,
	}
}

// CategoryPages enumerates all pages that are direct members of a category,
// following the server's continuation token until absent. Sub-categories are
// excluded. A category with no members yields an empty slice.
func (c *Client) CategoryPages(ctx context.Context, category string) ([]PageRef, error) {
	title := validation.APITitle(category)

	var pages []PageRef
	cmcontinue := ""
	for {
		params := url.Values{
			"action":  {"query"},
			"format":  {"json"},
			"list":    {"categorymembers"},
			"cmtitle": {title},
			"cmtype":  {"page"},
			"cmlimit": {strconv.Itoa(memberLimit)},
		}
		if cmcontinue != "" {
			params.Set("cmcontinue", cmcontinue)
		}

		var resp categoryMembersResponse
		if err := c.getJSON(ctx, params, &resp); err != nil {
			return nil, fmt.Errorf("listing members of %q: %w", title, err)
		}

		for _, m := range resp.Query.CategoryMembers {
			pages = append(pages, PageRef{ID: m.PageID, Title: m.Title})
		}

		cmcontinue = resp.Continue.CmContinue
		if cmcontinue == "" {
			return pages, nil
		}
	}
}

// Extracts fetches plain-text extracts for the given page ids, one request
// per batch of 20, and merges the results. Pages with a missing or empty
// extract map to the empty string.
func (c *Client) Extracts(ctx context.Context, pageIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(pageIDs))

	for start := 0; start < len(pageIDs); start += extractBatchSize {
		end := min(start+extractBatchSize, len(pageIDs))
		batch := pageIDs[start:end]

		ids := make([]string, len(batch))
		for i, id := range batch {
			ids[i] = strconv.FormatInt(id, 10)
		}

		params := url.Values{
			"action":          {"query"},
			"format":          {"json"},
			"formatversion":   {"2"},
			"prop":            {"extracts"},
			"explaintext":     {"1"},
			"exsectionformat": {"plain"},
			"pageids":         {strings.Join(ids, "|")},
		}

		var resp extractsResponse
		if err := c.getJSON(ctx, params, &resp); err != nil {
			return nil, fmt.Errorf("fetching extracts: %w", err)
		}

		for _, p := range resp.Query.Pages {
			out[p.PageID] = p.Extract
		}
	}

	return out, nil
}

// getJSON issues one GET with automatic exponential-backoff retry on
// connection failures and retryable statuses. Requests here are idempotent
// reads, so retrying is always safe.
func (c *Client) getJSON(ctx context.Context, params url.Values, out any) error {
	reqURL := c.endpoint + "?" + params.Encode()

	var lastErr error
	delay := c.retryDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			slog.Debug("retrying wiki request", "attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		if retryableStatus(resp.StatusCode) {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server returned %s", resp.Status)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("unexpected status %s", resp.Status)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("giving up after %d attempts: %w", maxAttempts, lastErr)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

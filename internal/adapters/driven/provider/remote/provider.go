// Package remote provides a document provider that fetches document metadata
// from a JSON endpoint: GET {base}/documents/{id} returns
// {"name": "...", "pages": [{"number": 0, "imageUrl": "..."}]}.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.DocumentProvider = (*Provider)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries after a 429.
	MaxRetries = 3

	// maxBodySize bounds the response body that is decoded.
	maxBodySize = 10 << 20
)

// ErrUnexpectedStatus is returned for non-success responses other than 404.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Provider fetches documents over HTTP.
type Provider struct {
	baseURL *url.URL
	client  *http.Client
	limiter *RateLimiter
}

// NewProvider creates a provider for baseURL. A non-empty token is sent as a
// bearer token. ratePerSecond <= 0 selects DefaultRate.
func NewProvider(baseURL, token string, ratePerSecond float64) (*Provider, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %w", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base url %q must be http or https", domain.ErrInvalidInput, baseURL)
	}

	client := &http.Client{Timeout: DefaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = oauth2.NewClient(context.Background(), ts)
		client.Timeout = DefaultTimeout
	}

	return &Provider{
		baseURL: u,
		client:  client,
		limiter: NewRateLimiter(ratePerSecond),
	}, nil
}

// documentURL returns the endpoint for documentID. IDs that would change
// the path's depth are rejected, since JoinPath cleans dot segments.
func (p *Provider) documentURL(documentID string) (string, error) {
	switch {
	case documentID == "", documentID == ".", documentID == "..",
		strings.ContainsAny(documentID, "/\\"):
		return "", fmt.Errorf("%w: document id %q", domain.ErrInvalidInput, documentID)
	}
	return p.baseURL.JoinPath("documents", documentID).String(), nil
}

// FetchDocument retrieves a document, retrying after rate-limited responses.
func (p *Provider) FetchDocument(ctx context.Context, documentID string) (*domain.RawDocument, error) {
	endpoint, err := p.documentURL(documentID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		doc, resp, err := p.fetch(ctx, endpoint, documentID)
		if resp == nil || resp.StatusCode != http.StatusTooManyRequests || attempt >= MaxRetries {
			return doc, err
		}

		wait := p.limiter.Backoff(resp)
		logger.Debug("document %q rate limited, retrying in %s", documentID, wait)
	}
}

func (p *Provider) fetch(ctx context.Context, endpoint, documentID string) (*domain.RawDocument, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch document %q: %w", documentID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, resp, fmt.Errorf("document %q: %w", documentID, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, resp, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var doc domain.RawDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&doc); err != nil {
		return nil, resp, fmt.Errorf("decode document %q: %w", documentID, err)
	}
	return &doc, resp, nil
}

// Package fetch loads remote datasets over HTTP with retries and
// caching. Responses are cached as raw bytes so repeated renders of the
// same URL skip the network entirely; parsing happens on every call
// because layouts are never cached.
package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/flowband/flowband/pkg/cache"
	"github.com/flowband/flowband/pkg/dataset"
	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow"
	"github.com/flowband/flowband/pkg/observability"
)

// DefaultTTL is how long fetched responses stay cached.
const DefaultTTL = 24 * time.Hour

// maxBodySize caps remote dataset size at 32 MiB.
const maxBodySize = 32 << 20

// Fetcher retrieves remote datasets.
type Fetcher struct {
	client *http.Client
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient overrides the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithCache sets the response cache. The default is no caching.
func WithCache(c cache.Cache) Option {
	return func(f *Fetcher) { f.cache = c }
}

// WithKeyer overrides cache key construction.
func WithKeyer(k cache.Keyer) Option {
	return func(f *Fetcher) { f.keyer = k }
}

// WithTTL sets the cache TTL for fetched responses.
func WithTTL(ttl time.Duration) Option {
	return func(f *Fetcher) { f.ttl = ttl }
}

// New creates a Fetcher. Without options it uses a 30 second timeout
// client and no cache.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the body at rawURL, consulting the cache first. With
// refresh set the cached copy is ignored and overwritten by whatever
// the server returns. Network failures and 5xx responses are retried
// with backoff; 4xx responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, refresh bool) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	key := f.keyer.HTTPKey("dataset", rawURL)
	if !refresh {
		if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "http")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		body, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(ctx, key, body, f.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "http", len(body))
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	u, _ := url.Parse(rawURL)
	observability.HTTP().OnRequest(ctx, http.MethodGet, u.Host, u.Path)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL %s", rawURL)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s failed", rawURL))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "%s returned 404", rawURL)
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(errors.New(errors.ErrCodeNetwork,
			"%s returned %d", rawURL, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork,
			"%s returned %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "reading %s", rawURL))
	}
	return body, nil
}

// Dataset fetches a remote dataset and parses it into flow records.
// The format is taken from the URL path extension, falling back to
// content sniffing (a body starting with "{" is treated as JSON).
func (f *Fetcher) Dataset(ctx context.Context, rawURL string, cols dataset.Columns, refresh bool) (flow.Records, error) {
	body, err := f.Fetch(ctx, rawURL, refresh)
	if err != nil {
		return nil, err
	}

	if isJSON(rawURL, body) {
		return dataset.ReadJSON(bytes.NewReader(body))
	}
	return dataset.ReadCSV(bytes.NewReader(body), cols)
}

func isJSON(rawURL string, body []byte) bool {
	if u, err := url.Parse(rawURL); err == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".json":
			return true
		case ".csv":
			return false
		}
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

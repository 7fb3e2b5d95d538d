package feeds

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

const userAgent = "chainboard-dashboard/1.0"

// Cache is the slice of the Redis client the fetcher needs. Nil disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Fetcher is the shared HTTP plumbing for all third-party feeds: one client,
// a per-fetcher rate limiter so dashboard traffic cannot hammer free APIs,
// and a short-TTL response cache.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   Cache
	ttl     time.Duration
	log     *logger.Logger
}

// NewFetcher creates a fetcher. ratePerMinute bounds outbound requests; burst
// is a tenth of the per-minute budget, minimum one.
func NewFetcher(timeout time.Duration, cache Cache, cacheTTL time.Duration, ratePerMinute int, log *logger.Logger) *Fetcher {
	rps := float64(ratePerMinute) / 60.0
	burst := ratePerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		cache:   cache,
		ttl:     cacheTTL,
		log:     log,
	}
}

// GetJSON fetches url and decodes the body into dest. Cached responses are
// served without touching the upstream. Any transport or status failure comes
// back wrapping ErrUpstreamUnavailable so callers can substitute sample data.
func (f *Fetcher) GetJSON(ctx context.Context, cacheKey, url string, dest interface{}) error {
	if f.cache != nil && cacheKey != "" {
		var raw json.RawMessage
		if err := f.cache.Get(ctx, cacheKey, &raw); err == nil {
			if err := json.Unmarshal(raw, dest); err == nil {
				return nil
			}
			// Corrupt cache entry falls through to a live fetch
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "create feed request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrUpstreamUnavailable, "%s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Wrapf(errors.ErrUpstreamUnavailable,
			"%s returned status %d: %s", url, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(errors.ErrUpstreamUnavailable, "%s: read body: %v", url, err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return errors.Wrapf(err, "decode response from %s", url)
	}

	if f.cache != nil && cacheKey != "" {
		if err := f.cache.Set(ctx, cacheKey, json.RawMessage(body), f.ttl); err != nil {
			f.log.Warnf("feed cache write failed for %s: %v", cacheKey, err)
		}
	}

	return nil
}

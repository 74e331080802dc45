package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	userAgent    = "gridiron/1.0 (+https://github.com/huangsam/gridiron)"
	maxBodyBytes = 64 << 20
	maxErrorBody = 200
	cacheVersion = 1
)

// fetcher performs rate-limited, circuit-protected GET requests with an
// optional cache-aside layer.
type fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	cache   contract.CacheStore
	logger  *logrus.Logger
	headers map[string]string
}

func newFetcher(name string, opts Options) *fetcher {
	opts = opts.withDefaults()

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), max(1, int(opts.Rate)))
	}

	logger := opts.Logger
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	return &fetcher{
		client:  opts.HTTPClient,
		limiter: limiter,
		breaker: gobreaker.NewCircuitBreaker(settings),
		cache:   opts.Cache,
		logger:  logger,
		headers: map[string]string{},
	}
}

// get returns the body of a 200 response for url.
func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := f.breaker.Execute(func() (any, error) {
		return f.do(ctx, url)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, f.breaker.Name())
	}
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (f *fetcher) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	f.logger.WithFields(logrus.Fields{
		"url":     url,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).String(),
	}).Debug("Provider request")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Body: string(snippet)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return body, nil
}

// getJSON fetches url and decodes the body into v.
func (f *fetcher) getJSON(ctx context.Context, url string, v any) error {
	body, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

// cached returns the value stored under key when it is fresh, otherwise it
// calls load and stores the result.
func cached[T any](f *fetcher, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if f.cache != nil {
		if data, version, ts, err := f.cache.Get(key); err == nil && version == cacheVersion &&
			time.Since(time.Unix(ts, 0)) <= ttl {
			var hit T
			if err := json.Unmarshal(data, &hit); err == nil {
				return hit, nil
			}
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if f.cache != nil {
		if data, err := json.Marshal(value); err == nil {
			if err := f.cache.Set(key, data, cacheVersion, time.Now().Unix()); err != nil {
				f.logger.WithError(err).WithField("key", key).Debug("Cache write failed")
			}
		}
	}
	return value, nil
}

// Package provider has the upstream clients that supply rosters, season stats,
// standings and consensus ranks.
package provider

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by every client in this package.
var (
	ErrNotFound    = errors.New("resource not found")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// Cache lifetimes per resource.
const (
	rosterTTL      = 2 * time.Hour
	athleteTTL     = 6 * time.Hour
	standingsTTL   = 1 * time.Hour
	sleeperTTL     = 24 * time.Hour
	espnFantasyTTL = 12 * time.Hour
)

// StatusError is returned for non-200 responses other than 404.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned %d: %s", e.URL, e.Code, e.Body)
}

// Options configures a client.
type Options struct {
	// Rate is the request budget per second. Zero or less disables limiting.
	Rate float64

	// Cache stores decoded responses. Nil disables caching.
	Cache contract.CacheStore

	// Logger defaults to contract.Logger().
	Logger *logrus.Logger

	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = contract.Logger()
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return o
}

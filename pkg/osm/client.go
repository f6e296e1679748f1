// Package osm provides the HTTP client layer for OpenStreetMap-adjacent
// services, with connection pooling, per-service rate limiting and
// response caching for the tools that fetch route geometry.
package osm

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// OSRMBaseURL is the public OSRM routing endpoint
	OSRMBaseURL = "https://router.project-osrm.org"

	// DefaultUserAgent identifies this server to upstream services
	DefaultUserAgent = "geocodec/0.1.0"
)

var (
	// Global HTTP client with connection pooling
	httpClient *http.Client

	// Rate limiters keyed by service host
	limiters     map[string]*rate.Limiter
	limitersLock sync.RWMutex

	// User agent string
	userAgent     string
	userAgentLock sync.RWMutex
)

// init initializes the global HTTP client and rate limiters
func init() {
	httpClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: 30 * time.Second,
	}

	// OSRM tolerates a moderate request rate; stay well inside it
	limiters = map[string]*rate.Limiter{
		hostFromURL(OSRMBaseURL): rate.NewLimiter(rate.Limit(1), 1),
	}

	SetUserAgent(DefaultUserAgent)
}

// UpdateOSRMRateLimits updates the OSRM rate limiter
func UpdateOSRMRateLimits(rps float64, burst int) {
	limitersLock.Lock()
	defer limitersLock.Unlock()
	limiters[hostFromURL(OSRMBaseURL)] = rate.NewLimiter(rate.Limit(rps), burst)
}

// SetUserAgent sets the User-Agent string
func SetUserAgent(ua string) {
	userAgentLock.Lock()
	defer userAgentLock.Unlock()
	userAgent = ua
}

// GetUserAgent returns the current User-Agent string
func GetUserAgent() string {
	userAgentLock.RLock()
	defer userAgentLock.RUnlock()
	return userAgent
}

// hostFromURL extracts the host from a URL string
func hostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}

// waitForRateLimit waits for the rate limiter matching the request host,
// if one is configured. Unknown hosts are not limited.
func waitForRateLimit(ctx context.Context, req *http.Request) error {
	limitersLock.RLock()
	limiter := limiters[req.URL.Host]
	limitersLock.RUnlock()

	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// DoRequest performs an HTTP request with the configured User-Agent and
// rate limiting applied.
func DoRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", GetUserAgent())

	if err := waitForRateLimit(ctx, req); err != nil {
		return nil, err
	}

	return httpClient.Do(req)
}

// Package geo resolves network addresses to human-readable locations via a
// third-party geolocation API. Lookups are best-effort: callers must treat
// every error as non-fatal.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesika/account-service/internal/config"
)

var ErrNoLocationData = errors.New("no location data in response")

type Locator struct {
	config *config.GeoConfig
	client *http.Client
	log    *zap.Logger
}

func NewLocator(config *config.GeoConfig, log *zap.Logger) *Locator {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Locator{
		config: config,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

type locationResponse struct {
	City        string `json:"city"`
	RegionName  string `json:"region_name"`
	CountryName string `json:"country_name"`
}

// Locate looks up the given address and returns a "City, Region, Country"
// description. Response fields are untrusted and optional; empty parts are
// dropped. The configured client timeout bounds the call regardless of ctx.
func (l *Locator) Locate(ctx context.Context, address string) (string, error) {
	lookupURL := fmt.Sprintf("%s/%s?access_key=%s",
		strings.TrimRight(l.config.Endpoint, "/"),
		url.PathEscape(address),
		url.QueryEscape(l.config.APIKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build lookup request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("location lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("location lookup returned status %d", resp.StatusCode)
	}

	var loc locationResponse
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return "", fmt.Errorf("failed to decode location response: %w", err)
	}

	var parts []string
	for _, p := range []string{loc.City, loc.RegionName, loc.CountryName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoLocationData
	}

	return strings.Join(parts, ", "), nil
}

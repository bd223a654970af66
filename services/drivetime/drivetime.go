// File: services/drivetime/drivetime.go
package drivetime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"slotsmith/utils"
)

const distanceMatrixURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

// Service resolves driving durations between two addresses using the Google
// Distance Matrix API, with a cache in front of it.
type Service struct {
	APIKey   string
	Cache    Cache
	HTTP     *http.Client
	FailOpen bool

	// Endpoint defaults to the public Distance Matrix API.
	Endpoint string
}

func NewService(apiKey string, cache Cache, failOpen bool, timeout time.Duration) *Service {
	return &Service{
		APIKey:   apiKey,
		Cache:    cache,
		HTTP:     &http.Client{Timeout: timeout},
		FailOpen: failOpen,
		Endpoint: distanceMatrixURL,
	}
}

// MinutesBetween returns the driving duration in whole minutes, rounded up.
// With no API key configured it reports zero. A route the provider cannot
// resolve also reports zero and is not cached, so a later fix to the address
// takes effect immediately.
func (s *Service) MinutesBetween(ctx context.Context, origin, destination string) (int, error) {
	if s.APIKey == "" {
		return 0, nil
	}
	if s.Cache != nil {
		if minutes, ok := s.Cache.Get(ctx, origin, destination); ok {
			return minutes, nil
		}
	}

	minutes, err := s.fetch(ctx, origin, destination)
	if err != nil {
		if s.FailOpen {
			utils.GetLogger().Warn("drive time lookup failed, treating as zero",
				zap.String("origin", origin),
				zap.String("destination", destination),
				zap.Error(err))
			return 0, nil
		}
		return 0, err
	}
	if minutes > 0 && s.Cache != nil {
		s.Cache.Put(ctx, origin, destination, minutes)
	}
	return minutes, nil
}

func (s *Service) fetch(ctx context.Context, origin, destination string) (int, error) {
	q := url.Values{
		"origins":      {origin},
		"destinations": {destination},
		"mode":         {"driving"},
		"units":        {"imperial"},
		"key":          {s.APIKey},
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = distanceMatrixURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("distance matrix returned status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
		Rows   []struct {
			Elements []struct {
				Status   string `json:"status"`
				Duration struct {
					Value int `json:"value"`
				} `json:"duration"`
			} `json:"elements"`
		} `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding distance matrix response failed: %w", err)
	}
	if body.Status != "OK" {
		return 0, fmt.Errorf("distance matrix status %q", body.Status)
	}
	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distance matrix returned no elements")
	}

	el := body.Rows[0].Elements[0]
	if el.Status != "OK" {
		// Unroutable address pair. Treat as zero drive time.
		utils.GetLogger().Debug("distance matrix element not OK",
			zap.String("status", el.Status),
			zap.String("origin", origin),
			zap.String("destination", destination))
		return 0, nil
	}
	return (el.Duration.Value + 59) / 60, nil
}

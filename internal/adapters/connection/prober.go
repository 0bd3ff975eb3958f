package connection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/pft-wallet-cli/internal/ports"
	json "github.com/goccy/go-json"
)

const maxProbeBytes = 1 << 16

// HTTPProber probes GET {base}/health directly, bypassing the API client so
// probes never touch the cache or the auth gate.
type HTTPProber struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ ports.HealthProber = HTTPProber{}

// Probe treats any answer below 500 as reachable. Authenticated probes
// additionally require {"status":"ok"}.
func (p HTTPProber) Probe(ctx context.Context, authenticated bool) error {
	if p.BaseURL == "" {
		return errors.New("probe base url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(p.BaseURL, "/")+"/health", nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("probe health: status %d", resp.StatusCode)
	}
	if !authenticated {
		return nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("probe health: status %d", resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProbeBytes)).Decode(&payload); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if payload.Status != "ok" {
		return fmt.Errorf("probe health: status %q", payload.Status)
	}

	return nil
}

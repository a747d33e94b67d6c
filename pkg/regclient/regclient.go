// Package regclient is a best-effort client for an external flight
// registration service. Its result is advisory only: it never gates
// stream admission, preserving the service's no-authentication-gate
// design.
package regclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client checks whether a flight id is known to an external registry
// when an ingest stream connects; the ingest engine runs the check in the
// background while the stream already accepts points.
type Client struct {
	baseURI    string
	httpClient *http.Client
	gate       *retryGate
}

// New returns a disabled client if baseURI is empty, otherwise a client
// that talks to baseURI.
func New(baseURI string) *Client {
	return &Client{
		baseURI:    baseURI,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		gate:       newRetryGate(time.Second, 30*time.Second),
	}
}

// Enabled reports whether a base URI was configured.
func (c *Client) Enabled() bool {
	return c.baseURI != ""
}

// CheckFlightID asks the registry whether flightID is recognized. Errors
// are logged and swallowed by callers that only use this for advisory
// logging; CheckFlightID itself still returns the error so tests and
// stricter callers can observe it.
func (c *Client) CheckFlightID(ctx context.Context, flightID, authToken string) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	c.gate.wait()

	url := fmt.Sprintf("%s/api/v1/flights/%s/check", c.baseURI, flightID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("regclient: building request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.gate.failure()
		return false, fmt.Errorf("regclient: request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		c.gate.success()
		return true, nil
	case http.StatusNotFound:
		c.gate.success()
		return false, nil
	default:
		c.gate.failure()
		return false, fmt.Errorf("regclient: unexpected status %s", resp.Status)
	}
}

// CheckFlightIDAdvisory calls CheckFlightID and only logs the outcome,
// for callers on the connect path that must never block or reject on a
// registry failure.
func (c *Client) CheckFlightIDAdvisory(ctx context.Context, flightID, authToken string) {
	if !c.Enabled() {
		return
	}
	known, err := c.CheckFlightID(ctx, flightID, authToken)
	if err != nil {
		slog.Warn("flight registry check failed", "flight_id", flightID, "error", err)
		return
	}
	if !known {
		slog.Info("flight id not recognized by registry", "flight_id", flightID)
	}
}

package store

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// AccountStatus is the result of probing the sync service account.
type AccountStatus string

const (
	// AccountAvailable means the account can take synced writes.
	AccountAvailable AccountStatus = "available"
	// AccountUnavailable means the account cannot be reached.
	AccountUnavailable AccountStatus = "unavailable"
	// AccountRestricted means the account exists but refuses access.
	AccountRestricted AccountStatus = "restricted"
	// AccountIndeterminate means the probe did not produce an answer in
	// time. The cascade treats it like unavailable.
	AccountIndeterminate AccountStatus = "indeterminate"
)

// Prober checks whether the sync account is available. Implementations
// should honor ctx; the gateway additionally bounds every probe with its
// own timeout so a misbehaving prober cannot hang initialization.
type Prober interface {
	Probe(ctx context.Context) (AccountStatus, error)
}

// HTTPProber probes the sync service's status endpoint over HTTP.
type HTTPProber struct {
	// URL is the status endpoint.
	URL string

	// Client is the HTTP client to use; http.DefaultClient when nil.
	Client *http.Client
}

// Probe issues a GET against the status endpoint. 2xx means available,
// 401/403 means restricted, anything else means unavailable.
func (p *HTTPProber) Probe(ctx context.Context) (AccountStatus, error) {
	if p.URL == "" {
		return AccountUnavailable, fmt.Errorf("no sync status URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return AccountUnavailable, fmt.Errorf("build status request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return AccountIndeterminate, fmt.Errorf("probe sync status: %w", ctx.Err())
		}
		return AccountUnavailable, fmt.Errorf("probe sync status: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return AccountAvailable, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return AccountRestricted, fmt.Errorf("sync account restricted: %s", resp.Status)
	default:
		return AccountUnavailable, fmt.Errorf("sync status endpoint returned %s", resp.Status)
	}
}

// probeAccount runs the prober bounded by timeout. A probe that does not
// return in time yields AccountIndeterminate; the gateway never blocks on
// a slow sync service.
func probeAccount(ctx context.Context, prober Prober, timeout time.Duration) (AccountStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		status AccountStatus
		err    error
	}
	done := make(chan result, 1)
	go func() {
		status, err := prober.Probe(ctx)
		done <- result{status, err}
	}()

	select {
	case r := <-done:
		return r.status, r.err
	case <-ctx.Done():
		return AccountIndeterminate, fmt.Errorf("probe sync status: %w", ctx.Err())
	}
}

// Package shortlink expands spotify.link redirect URLs to their canonical
// long form.
package shortlink

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"spotlink/internal/domain"
)

// Resolver probes short links for their redirect target. Resolution is best
// effort: any network failure is reported as an error and the caller skips
// the affected link.
type Resolver struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Resolver on top of the given client. The client is expected
// to follow redirects; the resolver derives its own non-following client for
// the header probe.
func New(client *http.Client, logger *slog.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// IsShortLink reports whether raw is a parseable URL on the short-link host.
func IsShortLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), domain.ShortLinkHost)
}

// Resolve returns the canonical long-form URL behind a short link, or the
// original URL unchanged when the probe succeeds without revealing a
// redirect target.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, error) {
	base, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse short link: %w", err)
	}

	probe := &http.Client{
		Transport: r.client.Transport,
		Timeout:   r.client.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
	if err != nil {
		return "", fmt.Errorf("build probe request: %w", err)
	}
	resp, err := probe.Do(req)
	if err != nil {
		return "", fmt.Errorf("probe short link: %w", err)
	}
	resp.Body.Close()

	if loc := resp.Header.Get("Location"); loc != "" {
		target, err := base.Parse(loc)
		if err != nil {
			return "", fmt.Errorf("parse redirect target %q: %w", loc, err)
		}
		return target.String(), nil
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if resp.Request != nil && resp.Request.URL != nil {
			return resp.Request.URL.String(), nil
		}
		return raw, nil
	}

	// The probe was inconclusive (e.g. HEAD rejected). Fall back to a full
	// request that follows redirects automatically.
	r.logger.Debug("short-link probe inconclusive, retrying with GET",
		"url", raw, "status", resp.StatusCode)

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", fmt.Errorf("build fallback request: %w", err)
	}
	full, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve short link: %w", err)
	}
	full.Body.Close()
	if full.Request != nil && full.Request.URL != nil {
		return full.Request.URL.String(), nil
	}
	return raw, nil
}

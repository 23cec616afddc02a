package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"spotlink/internal/metrics"
)

// DefaultTokenURL is Spotify's client-credentials token endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// expiryMargin is the safety window before expiry within which a cached
// token is treated as stale.
const expiryMargin = 10 * time.Second

// defaultExpirySeconds applies when the token response omits expires_in.
const defaultExpirySeconds = 3600

// ErrNoCredentials is returned when no client id/secret is configured; no
// network call is attempted in that case.
var ErrNoCredentials = errors.New("spotify credentials not configured")

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// TokenManager exchanges client credentials for bearer tokens and caches the
// result in a single slot. The cache is replaced wholesale on refresh and
// cleared entirely on Invalidate; it is never partially updated. Safe for
// concurrent use.
type TokenManager struct {
	clientID     string
	clientSecret string
	tokenURL     string
	client       *http.Client
	logger       *slog.Logger
	now          func() time.Time

	mu     sync.Mutex
	cached *cachedToken
}

// TokenManagerConfig configures a TokenManager. TokenURL and Now are
// optional; tests inject a clock through Now.
type TokenManagerConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Client       *http.Client
	Logger       *slog.Logger
	Now          func() time.Time
}

// NewTokenManager creates a TokenManager with an empty cache.
func NewTokenManager(cfg TokenManagerConfig) *TokenManager {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.Client == nil {
		cfg.Client = SharedHTTPClient(0)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TokenManager{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL,
		client:       cfg.Client,
		logger:       cfg.Logger,
		now:          cfg.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns a valid access token, reusing the cached one while it is
// more than the safety margin away from expiry. A failed exchange is
// reported as an error; callers treat it as "metadata unavailable".
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if m.clientID == "" || m.clientSecret == "" {
		return "", ErrNoCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil && m.cached.expiresAt.After(m.now().Add(expiryMargin)) {
		return m.cached.token, nil
	}

	token, expiresIn, err := m.exchange(ctx)
	if err != nil {
		return "", err
	}
	m.cached = &cachedToken{
		token:     token,
		expiresAt: m.now().Add(time.Duration(expiresIn) * time.Second),
	}
	return token, nil
}

// Invalidate clears the cache entirely. Callers that receive an
// authentication rejection from the metadata provider call this before
// requesting a fresh token.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.cached = nil
	m.mu.Unlock()
}

func (m *TokenManager) exchange(ctx context.Context) (string, int, error) {
	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, form)
	if err != nil {
		return "", 0, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	metrics.TokenExchanges.Inc()
	resp, err := m.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		m.logger.Error("token exchange rejected",
			"status", resp.StatusCode, "body", string(body))
		return "", 0, fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", 0, errors.New("token response missing access_token")
	}
	if tr.ExpiresIn <= 0 {
		tr.ExpiresIn = defaultExpirySeconds
	}
	return tr.AccessToken, tr.ExpiresIn, nil
}

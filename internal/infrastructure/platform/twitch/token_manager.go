package twitchinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"streamNotify/internal/domain"
)

const (
	defaultTokenURL   = "https://id.twitch.tv/oauth2/token"
	defaultExpirySkew = 30 * time.Second
	grantType         = "client_credentials"
)

type TokenManagerConfig struct {
	Credentials domain.Credentials
	// TokenURL defaults to the Twitch OAuth token endpoint.
	TokenURL   string
	HTTPClient *http.Client
	Clock      clockwork.Clock
	// ExpirySkew treats a token as expired this long before its real expiry.
	// Zero selects 30s, a negative value disables the skew.
	ExpirySkew time.Duration
}

// TokenManager owns the app access token obtained with the client
// credentials grant. Concurrent refreshes collapse into one exchange.
type TokenManager struct {
	creds    domain.Credentials
	tokenURL string
	httpCli  *http.Client
	clock    clockwork.Clock
	skew     time.Duration

	group singleflight.Group

	mu    sync.RWMutex
	token domain.Token
}

func NewTokenManager(cfg TokenManagerConfig) *TokenManager {
	m := &TokenManager{
		creds:    cfg.Credentials,
		tokenURL: cfg.TokenURL,
		httpCli:  cfg.HTTPClient,
		clock:    cfg.Clock,
		skew:     cfg.ExpirySkew,
	}
	if m.tokenURL == "" {
		m.tokenURL = defaultTokenURL
	}
	if m.httpCli == nil {
		m.httpCli = &http.Client{Timeout: 10 * time.Second}
	}
	if m.clock == nil {
		m.clock = clockwork.NewRealClock()
	}
	switch {
	case m.skew < 0:
		m.skew = 0
	case m.skew == 0:
		m.skew = defaultExpirySkew
	}
	return m
}

// GetValidToken returns the cached token, exchanging credentials first when
// none is cached or the cached one has expired.
func (m *TokenManager) GetValidToken(ctx context.Context) (domain.Token, error) {
	if tok, ok := m.cached(); ok {
		return tok, nil
	}

	v, err, _ := m.group.Do("app-token", func() (any, error) {
		if tok, ok := m.cached(); ok {
			return tok, nil
		}
		// Followers share this call, so the leader's cancellation must not fail them.
		tok, err := m.exchange(context.WithoutCancel(ctx))
		if err != nil {
			return domain.Token{}, err
		}
		m.mu.Lock()
		m.token = tok
		m.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return domain.Token{}, err
	}
	return v.(domain.Token), nil
}

func (m *TokenManager) Invalidate(tok domain.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.token.IsZero() && m.token.Value == tok.Value {
		m.token = domain.Token{}
	}
}

func (m *TokenManager) cached() (domain.Token, bool) {
	m.mu.RLock()
	tok := m.token
	m.mu.RUnlock()
	return tok, tok.ValidAt(m.clock.Now().Add(m.skew))
}

func (m *TokenManager) exchange(ctx context.Context) (domain.Token, error) {
	data := url.Values{}
	data.Set("client_id", m.creds.ClientID)
	data.Set("client_secret", m.creds.ClientSecret)
	data.Set("grant_type", grantType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return domain.Token{}, fmt.Errorf("twitch token: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpCli.Do(req)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: twitch token: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: twitch token: read body: %w", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Token{}, fmt.Errorf("%w: twitch token: status %d: %s", domain.ErrAuth, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload tokenPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Token{}, fmt.Errorf("%w: twitch token: decode: %v", domain.ErrAuth, err)
	}
	if payload.AccessToken == "" || payload.ExpiresIn <= 0 {
		return domain.Token{}, fmt.Errorf("%w: twitch token: malformed payload", domain.ErrAuth)
	}

	return domain.Token{
		Value:     payload.AccessToken,
		ExpiresAt: m.clock.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

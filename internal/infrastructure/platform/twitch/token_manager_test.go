package twitchinfra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamNotify/internal/domain"
)

type tokenServer struct {
	*httptest.Server
	calls atomic.Int32
}

// newTokenServer issues "token-<n>" for the n-th exchange, valid for expiresIn seconds.
func newTokenServer(t *testing.T, expiresIn int) *tokenServer {
	t.Helper()
	ts := &tokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := ts.calls.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test_client", r.FormValue("client_id"))
		assert.Equal(t, "test_secret", r.FormValue("client_secret"))
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-" + strconv.Itoa(int(n)),
			"expires_in":   expiresIn,
			"token_type":   "bearer",
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestManager(url string, clock clockwork.Clock) *TokenManager {
	return NewTokenManager(TokenManagerConfig{
		Credentials: domain.Credentials{ClientID: "test_client", ClientSecret: "test_secret"},
		TokenURL:    url,
		Clock:       clock,
	})
}

func TestTokenManager_ExchangesOnFirstCall(t *testing.T) {
	srv := newTokenServer(t, 3600)
	clock := clockwork.NewFakeClock()
	m := newTestManager(srv.URL, clock)

	tok, err := m.GetValidToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "token-1", tok.Value)
	assert.Equal(t, clock.Now().Add(time.Hour), tok.ExpiresAt)
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestTokenManager_ReusesCachedToken(t *testing.T) {
	srv := newTokenServer(t, 3600)
	m := newTestManager(srv.URL, clockwork.NewFakeClock())

	first, err := m.GetValidToken(context.Background())
	require.NoError(t, err)
	second, err := m.GetValidToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestTokenManager_RefreshesExpiredToken(t *testing.T) {
	srv := newTokenServer(t, 3600)
	clock := clockwork.NewFakeClock()
	m := newTestManager(srv.URL, clock)

	first, err := m.GetValidToken(context.Background())
	require.NoError(t, err)

	clock.Advance(time.Hour)

	second, err := m.GetValidToken(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.Value, second.Value)
	assert.True(t, second.ValidAt(clock.Now()))
	assert.Equal(t, int32(2), srv.calls.Load())
}

func TestTokenManager_RefreshesInsideExpirySkew(t *testing.T) {
	srv := newTokenServer(t, 3600)
	clock := clockwork.NewFakeClock()
	m := newTestManager(srv.URL, clock)

	_, err := m.GetValidToken(context.Background())
	require.NoError(t, err)

	// Still technically valid, but within the default 30s skew.
	clock.Advance(time.Hour - 10*time.Second)

	_, err = m.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), srv.calls.Load())
}

func TestTokenManager_ConcurrentCallersShareOneExchange(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "shared", "expires_in": 3600})
	}))
	defer srv.Close()

	m := newTestManager(srv.URL, clockwork.NewFakeClock())

	const callers = 20
	tokens := make([]domain.Token, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = m.GetValidToken(context.Background())
		}(i)
	}

	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, tokens[0], tokens[i])
	}
}

func TestTokenManager_InvalidateForcesRefresh(t *testing.T) {
	srv := newTokenServer(t, 3600)
	m := newTestManager(srv.URL, clockwork.NewFakeClock())

	first, err := m.GetValidToken(context.Background())
	require.NoError(t, err)

	m.Invalidate(first)

	second, err := m.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", second.Value)
}

func TestTokenManager_InvalidateStaleTokenKeepsCurrent(t *testing.T) {
	srv := newTokenServer(t, 3600)
	m := newTestManager(srv.URL, clockwork.NewFakeClock())

	current, err := m.GetValidToken(context.Background())
	require.NoError(t, err)

	m.Invalidate(domain.Token{Value: "older"})

	again, err := m.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, current, again)
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestTokenManager_AuthErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad credentials", http.StatusForbidden, `{"status":403,"message":"invalid client secret"}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"malformed json", http.StatusOK, `{invalid json`},
		{"missing token", http.StatusOK, `{"expires_in":3600}`},
		{"missing expiry", http.StatusOK, `{"access_token":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			m := newTestManager(srv.URL, clockwork.NewFakeClock())
			tok, err := m.GetValidToken(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrAuth)
			assert.True(t, tok.IsZero())
		})
	}
}

func TestTokenManager_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	m := newTestManager(url, clockwork.NewFakeClock())
	_, err := m.GetValidToken(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestTokenManager_FailureIsNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "late", "expires_in": 60})
	}))
	defer srv.Close()

	m := NewTokenManager(TokenManagerConfig{
		Credentials: domain.Credentials{ClientID: "id", ClientSecret: "secret"},
		TokenURL:    srv.URL,
		Clock:       clockwork.NewFakeClock(),
		ExpirySkew:  -1,
	})

	_, err := m.GetValidToken(context.Background())
	require.Error(t, err)

	tok, err := m.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", tok.Value)
}

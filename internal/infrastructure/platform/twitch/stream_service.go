package twitchinfra

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nicklaw5/helix/v2"

	"streamNotify/internal/domain"
)

const streamTypeLive = "live"

type StreamServiceConfig struct {
	ClientID string
	// APIBaseURL defaults to https://api.twitch.tv/helix.
	APIBaseURL     string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

// StreamService reads stream and user data from Helix with an app access
// token supplied per call.
type StreamService struct {
	clientID   string
	apiBaseURL string
	httpCli    *http.Client
	timeout    time.Duration
}

func NewStreamService(cfg StreamServiceConfig) *StreamService {
	s := &StreamService{
		clientID:   cfg.ClientID,
		apiBaseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpCli:    cfg.HTTPClient,
		timeout:    cfg.RequestTimeout,
	}
	if s.timeout <= 0 {
		s.timeout = 10 * time.Second
	}
	if s.httpCli == nil {
		s.httpCli = &http.Client{Timeout: s.timeout}
	}
	return s
}

// GetStatus reports whether streamer is live right now.
func (s *StreamService) GetStatus(ctx context.Context, streamer string, token domain.Token) (domain.StreamState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := s.client(ctx, token)
	if err != nil {
		return domain.Offline, err
	}

	resp, err := client.GetStreams(&helix.StreamsParams{
		UserLogins: []string{streamer},
	})
	if err != nil {
		return domain.Offline, fmt.Errorf("%w: helix: GetStreams: %w", domain.ErrNetwork, err)
	}
	if err := classify("GetStreams", resp.ResponseCommon); err != nil {
		return domain.Offline, err
	}

	for _, st := range resp.Data.Streams {
		if !strings.EqualFold(st.Type, streamTypeLive) {
			continue
		}
		login := st.UserLogin
		if login == "" {
			login = streamer
		}
		return domain.StreamState{
			Live:        true,
			Login:       login,
			DisplayName: st.UserName,
			Title:       st.Title,
			GameName:    st.GameName,
			ViewerCount: st.ViewerCount,
			StartedAt:   st.StartedAt,
			URL:         domain.ChannelURL(login),
		}, nil
	}

	return domain.Offline, nil
}

// LookupBroadcaster resolves a login to the broadcaster's profile.
func (s *StreamService) LookupBroadcaster(ctx context.Context, login string, token domain.Token) (domain.Broadcaster, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := s.client(ctx, token)
	if err != nil {
		return domain.Broadcaster{}, err
	}

	resp, err := client.GetUsers(&helix.UsersParams{
		Logins: []string{login},
	})
	if err != nil {
		return domain.Broadcaster{}, fmt.Errorf("%w: helix: GetUsers: %w", domain.ErrNetwork, err)
	}
	if err := classify("GetUsers", resp.ResponseCommon); err != nil {
		return domain.Broadcaster{}, err
	}

	if len(resp.Data.Users) == 0 {
		return domain.Broadcaster{}, fmt.Errorf("%w: twitch user %q", domain.ErrNotFound, login)
	}

	u := resp.Data.Users[0]
	return domain.Broadcaster{
		ID:              u.ID,
		Login:           u.Login,
		DisplayName:     u.DisplayName,
		ProfileImageURL: u.ProfileImageURL,
	}, nil
}

// client builds a Helix client bound to ctx. Helix clients carry the token
// and context as fields, so one per call keeps concurrent callers apart.
func (s *StreamService) client(ctx context.Context, token domain.Token) (*helix.Client, error) {
	opts := &helix.Options{
		ClientID:       s.clientID,
		AppAccessToken: token.Value,
		HTTPClient:     s.httpCli,
	}
	if s.apiBaseURL != "" {
		opts.APIBaseURL = s.apiBaseURL
	}

	client, err := helix.NewClientWithContext(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("helix: NewClient: %w", err)
	}
	return client, nil
}

func classify(op string, resp helix.ResponseCommon) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: helix: %s failed (%d: %s) %s",
			domain.ErrAuth, op, resp.StatusCode, resp.Error, resp.ErrorMessage)
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: helix: %s failed (%d: %s) %s",
			domain.ErrNotFound, op, resp.StatusCode, resp.Error, resp.ErrorMessage)
	default:
		return fmt.Errorf("%w: helix: %s failed (%d: %s) %s",
			domain.ErrNetwork, op, resp.StatusCode, resp.Error, resp.ErrorMessage)
	}
}

package domain

import (
	"context"
	"strings"
)

type Broadcaster struct {
	ID              string
	Login           string
	DisplayName     string
	ProfileImageURL string
}

// BroadcasterLookup resolves a login to a channel, failing with ErrNotFound
// when the login is unknown.
type BroadcasterLookup interface {
	LookupBroadcaster(ctx context.Context, login string, token Token) (Broadcaster, error)
}

const twitchChannelURL = "https://www.twitch.tv/"

// ChannelURL returns the public watch URL for login.
func ChannelURL(login string) string {
	return twitchChannelURL + strings.ToLower(strings.TrimSpace(login))
}

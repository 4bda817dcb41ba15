package domain

import (
	"context"
	"time"
)

type StreamState struct {
	Live        bool
	Login       string
	DisplayName string
	Title       string
	GameName    string
	ViewerCount int
	StartedAt   time.Time
	URL         string
}

// Offline is the zero StreamState.
var Offline = StreamState{}

func (s StreamState) String() string {
	if s.Live {
		return "LIVE"
	}
	return "OFFLINE"
}

// StreamStatusService reports whether streamer is live, authenticating with token.
type StreamStatusService interface {
	GetStatus(ctx context.Context, streamer string, token Token) (StreamState, error)
}

// LiveTracker detects OFFLINE->LIVE transitions. It starts OFFLINE, so a
// streamer that is already live on the first observation counts as a transition.
type LiveTracker struct {
	live bool
}

// Observe records state and reports whether it starts a new live run.
func (t *LiveTracker) Observe(state StreamState) bool {
	started := state.Live && !t.live
	t.live = state.Live
	return started
}

func (t *LiveTracker) Live() bool {
	return t.live
}

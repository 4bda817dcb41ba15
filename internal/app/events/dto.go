package events

import (
	"time"

	"streamNotify/internal/domain"
)

// StatusDTO is published on every successful status check.
type StatusDTO struct {
	Streamer    string    `json:"streamer"`
	Live        bool      `json:"live"`
	Title       string    `json:"title,omitempty"`
	GameName    string    `json:"game_name,omitempty"`
	ViewerCount int       `json:"viewer_count,omitempty"`
	URL         string    `json:"url,omitempty"`
	CheckedAt   time.Time `json:"checked_at"`
}

func NewStatusDTO(streamer string, state domain.StreamState, at time.Time) StatusDTO {
	return StatusDTO{
		Streamer:    streamer,
		Live:        state.Live,
		Title:       state.Title,
		GameName:    state.GameName,
		ViewerCount: state.ViewerCount,
		URL:         state.URL,
		CheckedAt:   at.UTC(),
	}
}

// FailureDTO describes a failed status check.
type FailureDTO struct {
	Kind     string    `json:"kind"`
	Count    int       `json:"count"`
	Warn     bool      `json:"warn"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// NotificationDTO reports how the user answered a notification.
type NotificationDTO struct {
	Title    string    `json:"title"`
	Action   string    `json:"action,omitempty"`
	Error    string    `json:"error,omitempty"`
	ClosedAt time.Time `json:"closed_at"`
}

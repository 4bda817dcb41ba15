package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type UserAction string

const (
	ActionWatch   UserAction = "watch"
	ActionDismiss UserAction = "dismiss"
	ActionTimeout UserAction = "timeout"
)

type NotificationFormat string

const (
	FormatDialog       NotificationFormat = "Dialog"
	FormatNotification NotificationFormat = "Notification"
)

func NotificationFormats() []NotificationFormat {
	return []NotificationFormat{FormatNotification, FormatDialog}
}

func ParseNotificationFormat(s string) (NotificationFormat, error) {
	for _, f := range NotificationFormats() {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown notification format %q (valid: Notification, Dialog)", s)
}

type NotificationRequest struct {
	Title     string
	Message   string
	IconPath  string
	ActionURL string
	Timeout   time.Duration
}

// Notifier shows a request and blocks until the user answers or Timeout passes.
type Notifier interface {
	Notify(ctx context.Context, req NotificationRequest) (UserAction, error)
}

type URLOpener interface {
	OpenURL(url string) error
}

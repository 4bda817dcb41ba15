package notify

import (
	"streamNotify/internal/domain"
)

// New returns the Notifier for format.
func New(format domain.NotificationFormat, appName string) domain.Notifier {
	if format == domain.FormatNotification {
		return NewBannerNotifier(appName)
	}
	return NewDialogNotifier()
}

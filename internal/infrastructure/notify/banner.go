package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	"streamNotify/internal/domain"
)

type bannerFunc func(title, message string, icon any) error

// BannerNotifier posts a passive desktop notification. The user cannot answer
// it, so it always reports ActionDismiss.
type BannerNotifier struct {
	notify bannerFunc
}

func NewBannerNotifier(appName string) *BannerNotifier {
	if appName != "" {
		beeep.AppName = appName
	}
	return &BannerNotifier{notify: beeep.Notify}
}

func (n *BannerNotifier) Notify(ctx context.Context, req domain.NotificationRequest) (domain.UserAction, error) {
	if err := ctx.Err(); err != nil {
		return domain.ActionTimeout, nil
	}
	var icon any
	if req.IconPath != "" {
		icon = req.IconPath
	}
	if err := n.notify(req.Title, req.Message, icon); err != nil {
		return "", fmt.Errorf("beeep: %w", err)
	}
	return domain.ActionDismiss, nil
}

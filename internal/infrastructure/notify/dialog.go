package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncruces/zenity"

	"streamNotify/internal/domain"
	"streamNotify/internal/i18n"
)

type dialogFunc func(text string, options ...zenity.Option) error

// DialogNotifier shows a native dialog. Requests with an ActionURL get the
// "Watch stream" / "OK" buttons, the others a single OK.
type DialogNotifier struct {
	question dialogFunc
	info     dialogFunc
}

func NewDialogNotifier() *DialogNotifier {
	return &DialogNotifier{
		question: zenity.Question,
		info:     zenity.Info,
	}
}

func (n *DialogNotifier) Notify(ctx context.Context, req domain.NotificationRequest) (domain.UserAction, error) {
	opts := []zenity.Option{
		zenity.Title(req.Title),
		zenity.Context(ctx),
	}
	if req.IconPath != "" {
		opts = append(opts, zenity.Icon(req.IconPath))
	}

	if req.ActionURL == "" {
		opts = append(opts, zenity.OKLabel(i18n.T("button_ok")))
		err := n.info(req.Message, opts...)
		return interpret(ctx, err, domain.ActionDismiss)
	}

	opts = append(opts,
		zenity.OKLabel(i18n.T("button_watch")),
		zenity.CancelLabel(i18n.T("button_ok")),
	)
	err := n.question(req.Message, opts...)
	return interpret(ctx, err, domain.ActionWatch)
}

// interpret maps a dialog result to a UserAction. onOK is what the
// affirmative button means for this dialog.
func interpret(ctx context.Context, err error, onOK domain.UserAction) (domain.UserAction, error) {
	switch {
	case err == nil:
		return onOK, nil
	case errors.Is(err, zenity.ErrCanceled):
		return domain.ActionDismiss, nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return domain.ActionTimeout, nil
	case errors.Is(err, context.Canceled):
		return domain.ActionDismiss, nil
	default:
		return "", fmt.Errorf("zenity: %w", err)
	}
}

package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"streamNotify/internal/domain"
	"streamNotify/internal/i18n"
)

const defaultTimeout = 60 * time.Second

// Result is what happened to one dispatched request.
type Result struct {
	Request domain.NotificationRequest
	Action  domain.UserAction
	Err     error
}

type ResultFunc func(ctx context.Context, res Result)

type Config struct {
	Notifier domain.Notifier
	Opener   domain.URLOpener
	// Timeout auto-dismisses a request after this long. Defaults to 60s.
	Timeout  time.Duration
	IconPath string
	OnResult ResultFunc
}

// Dispatcher shows notifications without blocking its caller. Each request
// runs on its own goroutine with its own timeout, detached from the caller's
// cancellation.
type Dispatcher struct {
	notifier domain.Notifier
	opener   domain.URLOpener
	timeout  time.Duration
	iconPath string
	onResult ResultFunc

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

func NewDispatcher(cfg Config) *Dispatcher {
	d := &Dispatcher{
		notifier: cfg.Notifier,
		opener:   cfg.Opener,
		timeout:  cfg.Timeout,
		iconPath: cfg.IconPath,
		onResult: cfg.OnResult,
	}
	if d.timeout <= 0 {
		d.timeout = defaultTimeout
	}
	return d
}

// StreamStarted announces a new live run. Its signature matches the watch
// loop's transition callback.
func (d *Dispatcher) StreamStarted(ctx context.Context, state domain.StreamState) {
	d.Dispatch(ctx, d.streamStartedRequest(state))
}

// Announce tells the user which broadcaster is being watched.
func (d *Dispatcher) Announce(ctx context.Context, b domain.Broadcaster) {
	d.Dispatch(ctx, domain.NotificationRequest{
		Title:    i18n.T("streamer_found_title"),
		Message:  i18n.Tf("streamer_found_message", ChannelLabel(b.DisplayName, b.Login)),
		IconPath: d.iconPath,
		Timeout:  d.timeout,
	})
}

// Dispatch starts req in the background and returns immediately. Requests
// arriving after Shutdown are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.NotificationRequest) {
	if req.Timeout <= 0 {
		req.Timeout = d.timeout
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		slog.WarnContext(ctx, "notifications: dispatcher closed, dropping request", "title", req.Title)
		return
	}
	d.inflight.Add(1)
	d.mu.Unlock()

	// Keep the caller's values (correlation id) but not its cancellation.
	base := context.WithoutCancel(ctx)
	go func() {
		defer d.inflight.Done()
		d.run(base, req)
	}()
}

func (d *Dispatcher) run(ctx context.Context, req domain.NotificationRequest) {
	nctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	action, err := d.notifier.Notify(nctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "notifications: notify failed", "title", req.Title, "error", err)
	} else {
		slog.InfoContext(ctx, "notifications: answered", "title", req.Title, "action", string(action))
	}

	if err == nil && action == domain.ActionWatch && req.ActionURL != "" && d.opener != nil {
		if oerr := d.opener.OpenURL(req.ActionURL); oerr != nil {
			slog.ErrorContext(ctx, "notifications: open url failed", "url", req.ActionURL, "error", oerr)
			err = fmt.Errorf("open %s: %w", req.ActionURL, oerr)
		}
	}

	if d.onResult != nil {
		d.onResult(ctx, Result{Request: req, Action: action, Err: err})
	}
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// is done. Requests still showing at that point are left to finish on their
// own and ctx's error is returned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		slog.WarnContext(ctx, "notifications: detaching in-flight notifications")
		return ctx.Err()
	}
}

func (d *Dispatcher) streamStartedRequest(state domain.StreamState) domain.NotificationRequest {
	return domain.NotificationRequest{
		Title:     i18n.T("stream_started_title"),
		Message:   i18n.Tf("stream_started_message", ChannelLabel(state.DisplayName, state.Login), state.Title),
		IconPath:  d.iconPath,
		ActionURL: state.URL,
		Timeout:   d.timeout,
	}
}

// ChannelLabel renders "Display(login)", or just the display name when it
// only differs from the login by case.
func ChannelLabel(displayName, login string) string {
	displayName = strings.TrimSpace(displayName)
	login = strings.TrimSpace(login)
	switch {
	case displayName == "":
		return login
	case login == "" || strings.EqualFold(displayName, login):
		return displayName
	default:
		return fmt.Sprintf("%s(%s)", displayName, login)
	}
}

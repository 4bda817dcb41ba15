package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"streamNotify/internal/app/events"
	"streamNotify/internal/domain"
	"streamNotify/internal/infrastructure/assets"
	"streamNotify/internal/infrastructure/config"
	"streamNotify/internal/infrastructure/notify"
	twitchinfra "streamNotify/internal/infrastructure/platform/twitch"
	"streamNotify/internal/platform/retry"
	"streamNotify/internal/usecase/notifications"
	"streamNotify/internal/usecase/watch"
)

const (
	appName              = "Stream Notify"
	defaultShutdownGrace = 5 * time.Second
)

type Options struct {
	Config   *config.Config
	Settings config.Settings

	// The fields below default to the real services.
	Clock         clockwork.Clock
	HTTPClient    *http.Client
	TokenURL      string
	APIBaseURL    string
	Notifier      domain.Notifier
	Opener        domain.URLOpener
	ShutdownGrace time.Duration
}

// Runtime wires the token manager, Helix client, watch loop and notification
// dispatcher for one watched broadcaster.
type Runtime struct {
	settings config.Settings
	clock    clockwork.Clock
	grace    time.Duration

	tokens   *twitchinfra.TokenManager
	streams  *twitchinfra.StreamService
	images   *assets.ImageStore
	notifier domain.Notifier
	opener   domain.URLOpener
	bus      *events.Bus

	mu         sync.Mutex
	started    bool
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	dispatcher *notifications.Dispatcher
	iconPath   string
}

// New builds a Runtime. It performs no network calls.
func New(opts Options) (*Runtime, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("%w: runtime: missing config", domain.ErrConfig)
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	httpCli := opts.HTTPClient
	if httpCli == nil {
		timeout := opts.Settings.RequestTimeout()
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpCli = &http.Client{Timeout: timeout}
	}

	r := &Runtime{
		settings: opts.Settings,
		clock:    clock,
		grace:    opts.ShutdownGrace,
		tokens: twitchinfra.NewTokenManager(twitchinfra.TokenManagerConfig{
			Credentials: opts.Config.Credentials(),
			TokenURL:    opts.TokenURL,
			HTTPClient:  httpCli,
			Clock:       clock,
		}),
		streams: twitchinfra.NewStreamService(twitchinfra.StreamServiceConfig{
			ClientID:       opts.Config.ClientID,
			APIBaseURL:     opts.APIBaseURL,
			HTTPClient:     httpCli,
			RequestTimeout: opts.Settings.RequestTimeout(),
		}),
		images:   assets.NewImageStore(opts.Settings.Notification.IconDir, httpCli),
		notifier: opts.Notifier,
		opener:   opts.Opener,
		bus:      events.NewBus(),
	}
	if r.grace <= 0 {
		r.grace = defaultShutdownGrace
	}
	if r.opener == nil {
		r.opener = notify.NewBrowserOpener()
	}
	return r, nil
}

// Lookup checks that login names an existing broadcaster.
func (r *Runtime) Lookup(ctx context.Context, login string) (domain.Broadcaster, error) {
	if err := domain.ValidateLogin(login); err != nil {
		return domain.Broadcaster{}, err
	}

	policy := retry.Policy{MaxAttempts: 2}
	classify := func(err error) retry.Action {
		if errors.Is(err, domain.ErrAuth) {
			return retry.Retry
		}
		return retry.Stop
	}
	return retry.Do(ctx, policy, classify, func(ctx context.Context) (domain.Broadcaster, error) {
		tok, err := r.tokens.GetValidToken(ctx)
		if err != nil {
			return domain.Broadcaster{}, err
		}
		b, err := r.streams.LookupBroadcaster(ctx, login, tok)
		if errors.Is(err, domain.ErrAuth) {
			r.tokens.Invalidate(tok)
		}
		return b, err
	})
}

// Watch announces b and polls it in the background until Stop. An empty
// format selects the one from the settings file.
func (r *Runtime) Watch(ctx context.Context, b domain.Broadcaster, format domain.NotificationFormat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return errors.New("runtime: already watching")
	}
	if format == "" {
		format = r.settings.Format()
	}
	notifier := r.notifier
	if notifier == nil {
		notifier = notify.New(format, appName)
	}

	if b.ProfileImageURL != "" {
		p, err := r.images.Fetch(ctx, b)
		if err != nil {
			slog.WarnContext(ctx, "runtime: profile image unavailable", "login", b.Login, "error", err)
		} else {
			r.iconPath = p
		}
	}

	r.dispatcher = notifications.NewDispatcher(notifications.Config{
		Notifier: notifier,
		Opener:   r.opener,
		Timeout:  r.settings.NotificationTimeout(),
		IconPath: r.iconPath,
		OnResult: r.publishResult,
	})

	loop := watch.NewLoop(watch.Config{
		Tokens: r.tokens,
		Status: r.streams,
		Clock:  r.clock,
		OnStatus: func(ctx context.Context, state domain.StreamState) {
			r.bus.Publish(events.TopicStreamStatus, events.NewStatusDTO(b.Login, state, r.clock.Now()))
		},
	})

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel
	r.started = true

	r.dispatcher.Announce(loopCtx, b)

	interval := r.settings.PollInterval()
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := loop.Run(loopCtx, b.Login, interval, r.streamStarted, r.watchFailed)
		if err != nil {
			slog.ErrorContext(loopCtx, "runtime: watch loop", "error", err)
			r.bus.Publish(events.TopicAppError, err.Error())
		}
	}()

	slog.InfoContext(ctx, "runtime: watching", "login", b.Login, "format", string(format), "interval", interval)
	return nil
}

// Stop ends the watch loop, gives open notifications a grace period, then
// removes the downloaded icon. It is safe to call more than once.
func (r *Runtime) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		r.bus.Close()
		return nil
	}
	r.started = false

	r.cancel()
	r.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), r.grace)
	defer cancel()
	if err := r.dispatcher.Shutdown(ctx); err != nil {
		slog.Warn("runtime: notifications still open at exit", "error", err)
	}

	r.bus.Close()

	if err := r.images.Remove(r.iconPath); err != nil {
		return err
	}
	r.iconPath = ""
	return nil
}

func (r *Runtime) Bus() *events.Bus {
	if r == nil {
		return nil
	}
	return r.bus
}

func (r *Runtime) streamStarted(ctx context.Context, state domain.StreamState) {
	r.dispatcher.StreamStarted(ctx, state)
	r.bus.Publish(events.TopicStreamLive, events.NewStatusDTO(state.Login, state, r.clock.Now()))
}

func (r *Runtime) watchFailed(_ context.Context, report watch.FailureReport) {
	r.bus.Publish(events.TopicWatchFailure, events.FailureDTO{
		Kind:     string(report.Kind),
		Count:    report.Count,
		Warn:     report.Warn,
		Error:    report.Err.Error(),
		FailedAt: r.clock.Now().UTC(),
	})
}

func (r *Runtime) publishResult(_ context.Context, res notifications.Result) {
	dto := events.NotificationDTO{
		Title:    res.Request.Title,
		Action:   string(res.Action),
		ClosedAt: r.clock.Now().UTC(),
	}
	if res.Err != nil {
		dto.Error = res.Err.Error()
	}
	r.bus.Publish(events.TopicNotification, dto)
}

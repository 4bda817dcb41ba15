package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"streamNotify/internal/domain"
	"streamNotify/internal/platform/logging"
	"streamNotify/internal/platform/retry"
)

// authAttempts bounds the status call per tick: the first try plus one retry
// after the rejected token is invalidated.
const authAttempts = 2

type TransitionFunc func(ctx context.Context, state domain.StreamState)
type FailureFunc func(ctx context.Context, report FailureReport)
type StatusFunc func(ctx context.Context, state domain.StreamState)

type Config struct {
	Tokens domain.TokenSource
	Status domain.StreamStatusService
	Clock  clockwork.Clock
	// OnStatus, when set, sees every successful observation.
	OnStatus StatusFunc
}

// Loop polls one streamer's status on a fixed interval and reports
// OFFLINE->LIVE transitions.
type Loop struct {
	tokens   domain.TokenSource
	status   domain.StreamStatusService
	clock    clockwork.Clock
	onStatus StatusFunc
}

func NewLoop(cfg Config) *Loop {
	l := &Loop{
		tokens:   cfg.Tokens,
		status:   cfg.Status,
		clock:    cfg.Clock,
		onStatus: cfg.OnStatus,
	}
	if l.clock == nil {
		l.clock = clockwork.NewRealClock()
	}
	return l
}

// Run checks streamer immediately and then once per interval until ctx is
// cancelled. Per-tick failures never stop the loop. onTransition runs on the
// loop goroutine and must not block.
func (l *Loop) Run(ctx context.Context, streamer string, interval time.Duration, onTransition TransitionFunc, onFailure FailureFunc) error {
	if interval <= 0 {
		return fmt.Errorf("watch: interval must be positive, got %s", interval)
	}
	if err := domain.ValidateLogin(streamer); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	ticker := l.clock.NewTicker(interval)
	defer ticker.Stop()

	s := &session{
		streamer:     streamer,
		onTransition: onTransition,
		onFailure:    onFailure,
	}

	slog.InfoContext(ctx, "watch: started", "streamer", streamer, "interval", interval)
	for ctx.Err() == nil {
		l.tick(ctx, s)

		select {
		case <-ctx.Done():
		case <-ticker.Chan():
		}
	}
	slog.InfoContext(ctx, "watch: stopped", "streamer", streamer)
	return nil
}

// Check fetches the current state once, refreshing the token and retrying a
// single time when Twitch rejects it.
func (l *Loop) Check(ctx context.Context, streamer string) (domain.StreamState, error) {
	policy := retry.Policy{
		MaxAttempts: authAttempts,
		OnRetry: func(attempt int, err error) {
			slog.DebugContext(ctx, "watch: token rejected, refreshing", "attempt", attempt, "error", err)
		},
	}

	return retry.Do(ctx, policy, retryOnAuth, func(ctx context.Context) (domain.StreamState, error) {
		tok, err := l.tokens.GetValidToken(ctx)
		if err != nil {
			return domain.Offline, err
		}
		state, err := l.status.GetStatus(ctx, streamer, tok)
		if errors.Is(err, domain.ErrAuth) {
			l.tokens.Invalidate(tok)
		}
		return state, err
	})
}

func retryOnAuth(err error) retry.Action {
	if errors.Is(err, domain.ErrAuth) {
		return retry.Retry
	}
	return retry.Stop
}

type session struct {
	streamer     string
	tracker      domain.LiveTracker
	failures     failureCounter
	onTransition TransitionFunc
	onFailure    FailureFunc
}

func (l *Loop) tick(ctx context.Context, s *session) {
	ctx = logging.WithID(ctx, logging.NewID())

	state, err := l.Check(ctx, s.streamer)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		l.fail(ctx, s, err)
		return
	}
	s.failures.reset()

	wasLive := s.tracker.Live()
	if s.tracker.Observe(state) {
		slog.InfoContext(ctx, "watch: stream went live", "streamer", s.streamer, "title", state.Title, "url", state.URL)
		if s.onTransition != nil {
			s.onTransition(ctx, state)
		}
	} else if wasLive && !state.Live {
		slog.InfoContext(ctx, "watch: stream went offline", "streamer", s.streamer)
	}

	if l.onStatus != nil {
		l.onStatus(ctx, state)
	}
}

func (l *Loop) fail(ctx context.Context, s *session, err error) {
	report := s.failures.record(err)

	slog.WarnContext(ctx, "watch: status check failed",
		"streamer", s.streamer,
		"error_kind", string(report.Kind),
		"consecutive", report.Count,
		"error", err,
	)
	if report.Warn {
		slog.WarnContext(ctx, "watch: repeated failures",
			"streamer", s.streamer,
			"error_kind", string(report.Kind),
			"consecutive", report.Count,
		)
	}

	if s.onFailure != nil {
		s.onFailure(ctx, report)
	}
}

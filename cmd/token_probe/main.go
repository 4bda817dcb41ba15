// Command token_probe checks Twitch app credentials: it exchanges them for an
// app access token and optionally reports one streamer's live status.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamNotify/internal/infrastructure/config"
	twitchinfra "streamNotify/internal/infrastructure/platform/twitch"
	"streamNotify/internal/platform/logging"
)

func main() {
	login := flag.String("login", "", "streamer login to look up (optional)")
	timeout := flag.Duration("timeout", 10*time.Second, "overall timeout")
	flag.Parse()

	if err := run(*login, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(login string, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tokens := twitchinfra.NewTokenManager(twitchinfra.TokenManagerConfig{
		Credentials: cfg.Credentials(),
	})
	tok, err := tokens.GetValidToken(ctx)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}
	fmt.Printf("token OK (%s), expires %s\n", mask(tok.Value), tok.ExpiresAt.Format(time.RFC3339))

	if login == "" {
		return nil
	}

	streams := twitchinfra.NewStreamService(twitchinfra.StreamServiceConfig{ClientID: cfg.ClientID})
	b, err := streams.LookupBroadcaster(ctx, login, tok)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", login, err)
	}
	fmt.Printf("broadcaster: %s (%s) id=%s\n", b.DisplayName, b.Login, b.ID)

	state, err := streams.GetStatus(ctx, b.Login, tok)
	if err != nil {
		return fmt.Errorf("status %s: %w", login, err)
	}
	if state.Live {
		fmt.Printf("status: %s %q (%d viewers) %s\n", state, state.Title, state.ViewerCount, state.URL)
	} else {
		fmt.Printf("status: %s\n", state)
	}
	return nil
}

func mask(s string) string {
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "..." + s[len(s)-3:]
}

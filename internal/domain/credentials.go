package domain

import (
	"context"
	"time"
)

type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Token is an app access token. It is replaced wholesale on refresh.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

func (t Token) IsZero() bool {
	return t.Value == ""
}

// ValidAt reports whether the token may still be sent at now.
func (t Token) ValidAt(now time.Time) bool {
	return !t.IsZero() && now.Before(t.ExpiresAt)
}

type TokenSource interface {
	GetValidToken(ctx context.Context) (Token, error)
	// Invalidate drops tok from the cache if it is still the cached token.
	Invalidate(tok Token)
}

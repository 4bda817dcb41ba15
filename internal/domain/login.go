package domain

import (
	"errors"
	"regexp"
)

var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var (
	ErrEmptyLogin   = errors.New("username cannot be empty")
	ErrInvalidLogin = errors.New("username must be alphanumeric")
)

// ValidateLogin checks a Twitch login name (not a display name).
func ValidateLogin(login string) error {
	if login == "" {
		return ErrEmptyLogin
	}
	if !loginPattern.MatchString(login) {
		return ErrInvalidLogin
	}
	return nil
}

package domain

import "errors"

var (
	ErrConfig   = errors.New("config error")
	ErrAuth     = errors.New("auth error")
	ErrNetwork  = errors.New("network error")
	ErrNotFound = errors.New("not found")
)

type ErrorKind string

const (
	KindConfig   ErrorKind = "config"
	KindAuth     ErrorKind = "auth"
	KindNetwork  ErrorKind = "network"
	KindNotFound ErrorKind = "not_found"
	KindUnknown  ErrorKind = "unknown"
)

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfig):
		return KindConfig
	case errors.Is(err, ErrAuth):
		return KindAuth
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}

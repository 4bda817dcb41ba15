package i18n

import (
	"fmt"
	"strings"
)

// Language represents a supported locale.
type Language string

const (
	LangEN Language = "en"
	LangJA Language = "ja"
)

var current Language = LangEN

// SetLanguage changes the active locale. It is meant to be called once at
// startup, before any goroutine reads strings.
// Unrecognized values fall back to English.
func SetLanguage(lang string) {
	switch Language(strings.ToLower(strings.TrimSpace(lang))) {
	case LangJA:
		current = LangJA
	default:
		current = LangEN
	}
}

// Current returns the active language.
func Current() Language {
	return current
}

// T returns the translated string for the given key, falling back to English
// and then to the key itself.
func T(key string) string {
	if current == LangJA {
		if v, ok := ja[key]; ok {
			return v
		}
	}
	if v, ok := en[key]; ok {
		return v
	}
	return key
}

// Tf returns a formatted translated string.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

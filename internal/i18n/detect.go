package i18n

import (
	"strings"

	"github.com/jeandeaual/go-locale"
)

// Auto asks Resolve to use the operating system's language.
const Auto = "auto"

var systemLanguage = locale.GetLanguage

// Resolve returns lang, or the OS language when lang is empty or Auto.
// Detection failures resolve to English.
func Resolve(lang string) Language {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == Auto {
		detected, err := systemLanguage()
		if err != nil {
			return LangEN
		}
		lang = strings.ToLower(detected)
	}
	switch Language(lang) {
	case LangJA:
		return LangJA
	default:
		return LangEN
	}
}

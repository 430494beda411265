// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate routes user visible toolchain messages through a
// locale-matched message printer.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is used when the host reports no locale.
const Fallback = "en-US"

var (
	printer *message.Printer
	tag     language.Tag
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("austin: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// Language returns the tag messages are being printed for.
func Language() string {
	return tag.String()
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

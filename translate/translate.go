// Package translate renders user-visible messages through a locale-aware
// printer, so error and diagnostic text follows the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = hostPrinter()

// hostPrinter matches the host's preferred locales, falling back to en-US.
func hostPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("armemu: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage replaces the host locale with a BCP 47 tag, such as "de-DE".
// Sentinel error text is rendered at start-up and keeps the host locale.
func SetLanguage(lang string) (err error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return
	}

	printer = message.NewPrinter(tag)
	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Number formats an unsigned word in the locale's digit grouping.
func Number(value uint32) string {
	return printer.Sprint(value)
}

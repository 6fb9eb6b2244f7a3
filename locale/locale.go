// Package locale holds the process-wide message language and translates
// user-facing messages through a golang.org/x/text message catalog.
package locale

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLanguage is the language messages are written in.
const DefaultLanguage = "en"

var (
	mu      sync.RWMutex
	current = language.English
	printer = message.NewPrinter(language.English, message.Catalog(messages))

	supported = []language.Tag{language.English, language.German, language.French}
	matcher   = language.NewMatcher(supported)
)

// SetLocale switches the process-wide language. The tag is matched against
// the available translations, so "de-AT" selects German and an unknown but
// well-formed tag falls back to English. Malformed tags are rejected and leave
// the current language in place.
func SetLocale(tag string) error {
	parsed, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("invalid language tag '%s': %w", tag, err)
	}

	_, index, _ := matcher.Match(parsed)
	selected := supported[index]

	mu.Lock()
	defer mu.Unlock()
	current = selected
	printer = message.NewPrinter(selected, message.Catalog(messages))
	return nil
}

// Current returns the selected language.
func Current() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Supported lists the languages with translations, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Sprintf formats key in the current language. Keys with no translation are
// used as the format string itself.
func Sprintf(key message.Reference, args ...interface{}) string {
	mu.RLock()
	p := printer
	mu.RUnlock()
	return p.Sprintf(key, args...)
}

func mustSet(b *catalog.Builder, tag language.Tag, key, msg string) {
	if err := b.SetString(tag, key, msg); err != nil {
		panic(err)
	}
}

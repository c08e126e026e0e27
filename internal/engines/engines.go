// Package engines holds the built-in search engine catalog and builds the
// destination URL for a query.
package engines

import (
	"strings"

	"startpage/internal/domain"
)

// DefaultID is used when no engine has been selected or the stored one is unknown
const DefaultID = "google"

var builtin = []domain.Engine{
	{ID: "google", Name: "Google", URL: "https://www.google.com/search?q=", Icon: "https://www.google.com/favicon.ico"},
	{ID: "bing", Name: "Bing", URL: "https://www.bing.com/search?q=", Icon: "https://www.bing.com/favicon.ico"},
	{ID: "baidu", Name: "Baidu", URL: "https://www.baidu.com/s?wd=", Icon: "https://www.baidu.com/favicon.ico"},
	{ID: "duckduckgo", Name: "DuckDuckGo", URL: "https://duckduckgo.com/?q=", Icon: "https://duckduckgo.com/favicon.ico"},
	{ID: "duckai", Name: "Duck.ai", URL: "https://duck.ai/chat?duckai=1&q=", Icon: "https://duck.ai/favicon.ico"},
	{ID: "yahoo", Name: "Yahoo", URL: "https://search.yahoo.com/search?p=", Icon: "https://www.yahoo.com/favicon.ico"},
	{ID: "yandex", Name: "Yandex", URL: "https://yandex.com/search/?text=", Icon: "https://yandex.com/favicon.ico"},
}

// All returns a copy of the built-in engines in display order
func All() []domain.Engine {
	out := make([]domain.Engine, len(builtin))
	copy(out, builtin)
	return out
}

// Default returns the default engine
func Default() domain.Engine {
	e, _ := Lookup(DefaultID)
	return e
}

// Lookup finds an engine by identifier
func Lookup(id string) (domain.Engine, bool) {
	for _, e := range builtin {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Engine{}, false
}

// LookupOrDefault returns the engine for id, or the default engine
func LookupOrDefault(id string) domain.Engine {
	if e, ok := Lookup(id); ok {
		return e
	}
	return Default()
}

// IndexOf returns the catalog position of id, or -1
func IndexOf(id string) int {
	for i, e := range builtin {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// SearchURL concatenates the engine prefix with the encoded query
func SearchURL(e domain.Engine, query string) string {
	return e.URL + EncodeComponent(query)
}

const upperhex = "0123456789ABCDEF"

// EncodeComponent percent-encodes s the way browsers encode a URI component:
// letters, digits and -_.!~*'() are kept, every other byte of the UTF-8
// encoding becomes %XX. Spaces become %20, never '+'.
func EncodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

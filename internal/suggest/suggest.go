// Package suggest fetches autocomplete candidates for a query, either from
// the third-party provider directly or through a running suggestion proxy.
package suggest

import "context"

// MaxItems is the most suggestions the search box ever shows
const MaxItems = 8

// Fetcher returns autocomplete candidates for query. An empty query yields
// an empty list without any network traffic.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]string, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, query string) ([]string, error)

func (f FetcherFunc) Fetch(ctx context.Context, query string) ([]string, error) {
	return f(ctx, query)
}

// Truncate returns at most n leading items of list as a new slice
func Truncate(list []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(list) < n {
		n = len(list)
	}
	out := make([]string, n)
	copy(out, list[:n])
	return out
}

// Package storage provides the local key-value store that backs search
// history and the selected engine.
package storage

import "context"

// Well-known keys
const (
	KeyHistory = "search-history"
	KeyEngine  = "selected-engine"
)

// KV is a small string key-value store. A missing key is reported with
// ok == false and a nil error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

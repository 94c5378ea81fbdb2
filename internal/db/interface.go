package db

import "context"

// Store is a persistent key/value backend for the view counter.
// Every provider satisfies views.Store through Get and Set.
type Store interface {
	// Name is the provider name, as in the config
	Name() string

	// Connection management
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error

	// Get returns the value under key; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value under key
	Set(ctx context.Context, key, value string) error
	// Keys lists the stored keys that start with prefix, sorted
	Keys(ctx context.Context, prefix string) ([]string, error)
}

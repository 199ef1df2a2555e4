package interfaces

import "context"

// Cache is a keyed store with per-entry expiry. The instance registry keeps
// one domain.InstanceRecord per running process in it.
//
//go:generate moq -stub -out mock/cache.go -pkg mock . Cache
type Cache[T any] interface {
	// WriteValue stores item under key and (re)arms its TTL in milliseconds.
	// Fails with internal_server_error when encoding or the store write fails.
	WriteValue(ctx context.Context, key string, item T, ttlMs int) error

	// ListAllValues returns every live entry. An empty store, or one where no
	// entry could be decoded, yields entity_not_found.
	ListAllValues(ctx context.Context) ([]T, error)

	// DeleteValue drops key. Deleting an absent key is not an error.
	DeleteValue(ctx context.Context, key string) error
}

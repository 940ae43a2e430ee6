package session

import "context"

// Storage is the persisted key/value space the session survives restarts in.
// Implementations live in the repositories package.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

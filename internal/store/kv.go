// Package store provides the client's local persistence: a small key/value
// abstraction (the localStorage equivalent of the web client) with a SQLite
// implementation for real runs and an in-memory one for tests, plus typed
// stores for the credential, session, organization context, resend cooldowns
// and the install's device identifier.
package store

import "context"

// KV is a string-keyed byte store. Get returns (nil, nil) for a missing key;
// a miss is never an error. Set fully replaces any prior value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// TxKV is a KV whose mutations can be grouped into an all-or-nothing unit.
// Update runs fn against a transactional view; either every write in fn is
// persisted or none is.
type TxKV interface {
	KV
	Update(ctx context.Context, fn func(ctx context.Context, kv KV) error) error
}

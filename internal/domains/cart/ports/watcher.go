package ports

import "context"

// ChangeWatcher reports external writes to the persisted cart record,
// the analog of a storage event fired by another tab. Consumers react
// by reloading and re-rendering; the model stays last-write-wins, so a
// notification carries no payload.
type ChangeWatcher interface {
	// Watch emits a signal per external change until ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
	Close() error
}

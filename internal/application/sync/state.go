// Package sync contains the per-user synchronization controllers that
// reconcile in-memory goal and entry snapshots against the cache-then-server
// document store.
package sync

// State names the phases of a controller's reconciliation cycle.
type State string

const (
	// StateNoUser means no user id is active; terminal until one is supplied.
	StateNoUser State = "no_user"

	// StateLoading means a subscription is open but no definitive value has
	// arrived yet.
	StateLoading State = "loading"

	// StateResolved means the snapshot settled to a value or confirmed-null.
	StateResolved State = "resolved"

	// StateError means both the subscription and its fallback failed.
	StateError State = "error"
)

package task

// Storage keys used by the Manager. All three are written together after
// every mutation so the persisted snapshot never splits a state change.
const (
	// KeyActive holds the active task list.
	KeyActive = "tasks.active"

	// KeyArchived holds the archived history.
	KeyArchived = "tasks.archived"

	// KeyNextID holds the next identifier to assign. Persisting it keeps
	// IDs unique across process restarts.
	KeyNextID = "tasks.next_id"
)

// Storage is the key-value persistence provider injected into a Manager.
//
// The Manager treats writes as best-effort: Save and Remove errors are
// logged and the in-memory mutation stands. Load must return nil without
// touching value when the key is missing; on a read or decode failure it
// returns an error and the caller discards whatever was written into value.
type Storage interface {
	// Save stores value under key, replacing any previous document.
	Save(key string, value any) error

	// Load decodes the document stored under key into value.
	Load(key string, value any) error

	// Remove deletes the document stored under key, if any.
	Remove(key string) error

	// Clear deletes every key in this provider's namespace.
	Clear() error
}

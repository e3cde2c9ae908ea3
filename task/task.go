// Package task implements the state manager for a two-phase task tracker.
//
// Completion happens in two phases: checking a task off (phase one) leaves
// it in the active list, and a separate archive step (phase two) moves
// checked-off tasks into the archived history. The Manager owns both lists
// and the ID counter, persists a full state snapshot through an injected
// Storage provider after every mutation, and then notifies subscribed
// listeners synchronously.
//
// The public API mirrors the tracker's operations:
//   - Add, Toggle, UpdateText, Delete for the active list
//   - ArchiveCompleted, Revert for moving tasks between lists
//   - ClearAll, ClearArchived for bulk removal
//   - Active, Archived, Find, Counts for querying
//   - Subscribe for change notification
package task

import "time"

// Task represents a single user-entered item.
type Task struct {
	// ID is a unique integer identifier, assigned monotonically and never reused.
	ID int `json:"id"`

	// Text is the trimmed task text. It is never empty while the task exists.
	Text string `json:"text"`

	// Completed reports whether the task is checked off. It is meaningful
	// only while the task is in the active list.
	Completed bool `json:"completed"`

	// CreatedAt is when the task was created. Immutable after creation.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is when the task was archived (nil while active).
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

package task

import (
	"log"
	"strings"
	"time"
)

// Counts summarizes the manager's collections. The values are recomputed
// from the current lists on every call, never cached.
type Counts struct {
	// Pending is the number of active tasks not yet completed.
	Pending int

	// Completed is the number of active tasks completed but not archived.
	Completed int

	// Archived is the number of tasks in the archived history.
	Archived int
}

// Manager owns the active list, the archived history, the ID counter, and
// the change listeners. All mutation goes through its methods; every
// successful mutation persists the full state snapshot and then invokes
// the listeners in registration order, synchronously.
//
// A Manager is a single-writer, single-process model: each operation runs
// to completion (mutate, persist, notify) before the next call is
// processed. It is not safe for concurrent use. Listener callbacks must
// not assume atomicity beyond one full mutate-persist-notify cycle.
type Manager struct {
	storage   Storage
	active    []Task
	archived  []Task
	nextID    int
	listeners []func()

	// now and logf are overridable in tests.
	now  func() time.Time
	logf func(format string, args ...any)
}

// NewManager loads persisted state from storage and returns a manager.
// Missing or undecodable values fall back to an empty active list, an
// empty archived history, and a counter of 1. A nil storage yields a
// purely in-memory manager.
func NewManager(storage Storage) *Manager {
	m := &Manager{
		storage: storage,
		nextID:  1,
		now:     time.Now,
		logf:    log.Printf,
	}
	m.load()
	m.repair()
	return m
}

// Subscribe registers a listener invoked after every successful mutation.
// Listeners are called synchronously in registration order and live for
// the manager's lifetime; there is no unsubscribe.
func (m *Manager) Subscribe(listener func()) {
	if listener == nil {
		return
	}
	m.listeners = append(m.listeners, listener)
}

// Active returns a copy of the active list in display order.
func (m *Manager) Active() []Task {
	return append([]Task(nil), m.active...)
}

// Archived returns a copy of the archived history in archival order.
func (m *Manager) Archived() []Task {
	return append([]Task(nil), m.archived...)
}

// Find returns the task with the given ID, searching the active list
// first and the archived history second.
func (m *Manager) Find(id int) (Task, bool) {
	for _, t := range m.active {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range m.archived {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Counts returns the derived counts for the current collections.
func (m *Manager) Counts() Counts {
	counts := Counts{Archived: len(m.archived)}
	for _, t := range m.active {
		if t.Completed {
			counts.Completed++
		} else {
			counts.Pending++
		}
	}
	return counts
}

func (m *Manager) load() {
	if m.storage == nil {
		return
	}

	var active []Task
	if err := m.storage.Load(KeyActive, &active); err != nil {
		m.logf("load %s: %v", KeyActive, err)
	} else {
		m.active = active
	}

	var archived []Task
	if err := m.storage.Load(KeyArchived, &archived); err != nil {
		m.logf("load %s: %v", KeyArchived, err)
	} else {
		m.archived = archived
	}

	nextID := 1
	if err := m.storage.Load(KeyNextID, &nextID); err != nil {
		m.logf("load %s: %v", KeyNextID, err)
	} else {
		m.nextID = nextID
	}
}

// repair restores the manager's invariants over loaded state, which may
// have been hand-edited or partially written: blank tasks and non-positive
// IDs are dropped, a duplicated ID keeps its first occurrence with the
// active list winning, archived entries always carry Completed and a
// completion time, and the counter is raised above every ID present.
func (m *Manager) repair() {
	seen := make(map[int]bool, len(m.active)+len(m.archived))

	active := m.active[:0]
	for _, t := range m.active {
		t.Text = strings.TrimSpace(t.Text)
		if t.ID <= 0 || t.Text == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		active = append(active, t)
	}
	m.active = active

	archived := m.archived[:0]
	for _, t := range m.archived {
		t.Text = strings.TrimSpace(t.Text)
		if t.ID <= 0 || t.Text == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		t.Completed = true
		if t.CompletedAt == nil {
			at := t.CreatedAt
			t.CompletedAt = &at
		}
		archived = append(archived, t)
	}
	m.archived = archived

	if m.nextID < 1 {
		m.nextID = 1
	}
	for id := range seen {
		if id >= m.nextID {
			m.nextID = id + 1
		}
	}
}

// commit runs the persist-then-notify tail of a successful mutation.
func (m *Manager) commit() {
	m.persist()
	m.notify()
}

// persist writes the full state snapshot. Writes are best-effort: a
// failure is logged and the in-memory state stands, so memory and disk can
// diverge until the next successful write.
func (m *Manager) persist() {
	if m.storage == nil {
		return
	}
	if err := m.storage.Save(KeyActive, m.active); err != nil {
		m.logf("save %s: %v", KeyActive, err)
	}
	if err := m.storage.Save(KeyArchived, m.archived); err != nil {
		m.logf("save %s: %v", KeyArchived, err)
	}
	if err := m.storage.Save(KeyNextID, m.nextID); err != nil {
		m.logf("save %s: %v", KeyNextID, err)
	}
}

func (m *Manager) notify() {
	for _, listener := range m.listeners {
		listener()
	}
}

package task

import "strings"

// Add creates a task from text and appends it to the active list. The
// text is trimmed first; empty or whitespace-only input is a no-op that
// returns nil without persisting or notifying.
func (m *Manager) Add(text string) *Task {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	created := Task{
		ID:        m.nextID,
		Text:      text,
		CreatedAt: m.now(),
	}
	m.nextID++
	m.active = append(m.active, created)

	m.commit()
	return &created
}

// Toggle flips the completed flag of an active task in place; the task
// stays in the active list either way. When the ID names an archived task
// instead, the task is reverted: moved back to the active list with its
// completion cleared. Unknown IDs are a no-op. It reports whether
// anything changed.
func (m *Manager) Toggle(id int) bool {
	for i := range m.active {
		if m.active[i].ID != id {
			continue
		}
		m.active[i].Completed = !m.active[i].Completed
		m.commit()
		return true
	}

	if m.restore(id) {
		m.commit()
		return true
	}
	return false
}

// UpdateText replaces the text of an active task. Archived task text is
// immutable. The replacement is trimmed first; empty or whitespace-only
// text is a no-op. It reports whether the text was updated; persistence
// and notification happen only on a successful update.
func (m *Manager) UpdateText(id int, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	for i := range m.active {
		if m.active[i].ID != id {
			continue
		}
		m.active[i].Text = text
		m.commit()
		return true
	}
	return false
}

// Delete removes the task with the given ID, searching the active list
// first and the archived history second. It reports whether a task was
// removed; persistence and notification happen only on removal.
func (m *Manager) Delete(id int) bool {
	for i := range m.active {
		if m.active[i].ID != id {
			continue
		}
		m.active = append(m.active[:i], m.active[i+1:]...)
		m.commit()
		return true
	}

	for i := range m.archived {
		if m.archived[i].ID != id {
			continue
		}
		m.archived = append(m.archived[:i], m.archived[i+1:]...)
		m.commit()
		return true
	}
	return false
}

// ArchiveCompleted moves every completed active task into the archived
// history, stamping each with the same completion time. Archival order
// follows the tasks' order in the active list. It returns the number of
// tasks moved. The snapshot is persisted and listeners are notified even
// when nothing was completed.
func (m *Manager) ArchiveCompleted() int {
	now := m.now()

	remaining := m.active[:0]
	moved := 0
	for _, t := range m.active {
		if !t.Completed {
			remaining = append(remaining, t)
			continue
		}
		at := now
		t.CompletedAt = &at
		m.archived = append(m.archived, t)
		moved++
	}
	m.active = remaining

	m.commit()
	return moved
}

// Revert moves an archived task back to the active list with its
// completed flag and completion time cleared. Unknown IDs are a no-op.
// It reports whether the task was reverted.
func (m *Manager) Revert(id int) bool {
	if !m.restore(id) {
		return false
	}
	m.commit()
	return true
}

// ClearAll empties both the active list and the archived history.
// Irreversible.
func (m *Manager) ClearAll() {
	m.active = nil
	m.archived = nil
	m.commit()
}

// ClearArchived empties only the archived history. Irreversible.
func (m *Manager) ClearArchived() {
	m.archived = nil
	m.commit()
}

// restore moves an archived task back to the active list, clearing its
// completion state. It does not persist or notify.
func (m *Manager) restore(id int) bool {
	for i := range m.archived {
		if m.archived[i].ID != id {
			continue
		}
		reverted := m.archived[i]
		reverted.Completed = false
		reverted.CompletedAt = nil
		m.archived = append(m.archived[:i], m.archived[i+1:]...)
		m.active = append(m.active, reverted)
		return true
	}
	return false
}

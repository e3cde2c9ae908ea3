package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// memStorage is an in-memory Storage holding JSON documents per key.
type memStorage struct {
	docs map[string]json.RawMessage
}

func newMemStorage() *memStorage {
	return &memStorage{docs: make(map[string]json.RawMessage)}
}

func (s *memStorage) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.docs[key] = data
	return nil
}

func (s *memStorage) Load(key string, value any) error {
	data, ok := s.docs[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(data, value)
}

func (s *memStorage) Remove(key string) error {
	delete(s.docs, key)
	return nil
}

func (s *memStorage) Clear() error {
	s.docs = make(map[string]json.RawMessage)
	return nil
}

// failStorage fails every operation.
type failStorage struct{}

func (failStorage) Save(string, any) error { return errors.New("disk full") }
func (failStorage) Load(string, any) error { return errors.New("unreadable") }
func (failStorage) Remove(string) error { return errors.New("unremovable") }
func (failStorage) Clear() error { return errors.New("uncleanable") }

func newTestManager(t *testing.T) (*Manager, *memStorage) {
	t.Helper()

	storage := newMemStorage()
	m := NewManager(storage)
	m.logf = t.Logf
	return m, storage
}

// seedManager loads a manager from pre-populated storage documents.
func seedManager(t *testing.T, active, archived []Task, nextID int) *Manager {
	t.Helper()

	storage := newMemStorage()
	if err := storage.Save(KeyActive, active); err != nil {
		t.Fatalf("seed active: %v", err)
	}
	if err := storage.Save(KeyArchived, archived); err != nil {
		t.Fatalf("seed archived: %v", err)
	}
	if err := storage.Save(KeyNextID, nextID); err != nil {
		t.Fatalf("seed next id: %v", err)
	}

	m := NewManager(storage)
	m.logf = t.Logf
	return m
}

func timePtr(value time.Time) *time.Time {
	return &value
}

// checkInvariants verifies that no ID appears in both collections and that
// every ID is below the counter.
func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()

	seen := make(map[int]bool)
	for _, item := range m.active {
		if seen[item.ID] {
			t.Errorf("id %d appears twice", item.ID)
		}
		seen[item.ID] = true
		if item.ID >= m.nextID {
			t.Errorf("active id %d >= next id %d", item.ID, m.nextID)
		}
	}
	for _, item := range m.archived {
		if seen[item.ID] {
			t.Errorf("id %d appears in both collections", item.ID)
		}
		seen[item.ID] = true
		if item.ID >= m.nextID {
			t.Errorf("archived id %d >= next id %d", item.ID, m.nextID)
		}
		if !item.Completed {
			t.Errorf("archived task %d is not completed", item.ID)
		}
		if item.CompletedAt == nil {
			t.Errorf("archived task %d has no completion time", item.ID)
		}
	}
}

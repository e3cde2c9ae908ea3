package task

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewManager_Defaults(t *testing.T) {
	m, _ := newTestManager(t)

	if len(m.Active()) != 0 {
		t.Errorf("expected empty active list, got %d tasks", len(m.Active()))
	}
	if len(m.Archived()) != 0 {
		t.Errorf("expected empty archived history, got %d tasks", len(m.Archived()))
	}
	if m.nextID != 1 {
		t.Errorf("expected next id 1, got %d", m.nextID)
	}
}

func TestNewManager_NilStorage(t *testing.T) {
	m := NewManager(nil)

	created := m.Add("In memory only")
	if created == nil {
		t.Fatal("expected task to be created")
	}
	if created.ID != 1 {
		t.Errorf("expected id 1, got %d", created.ID)
	}
}

func TestNewManager_LoadsPersistedState(t *testing.T) {
	now := time.Now()
	m := seedManager(t,
		[]Task{{ID: 1, Text: "Buy milk", CreatedAt: now}},
		[]Task{{ID: 2, Text: "Old chore", Completed: true, CreatedAt: now, CompletedAt: timePtr(now)}},
		3,
	)

	active := m.Active()
	if len(active) != 1 || active[0].Text != "Buy milk" {
		t.Fatalf("expected loaded active task, got %+v", active)
	}
	archived := m.Archived()
	if len(archived) != 1 || archived[0].Text != "Old chore" {
		t.Fatalf("expected loaded archived task, got %+v", archived)
	}
	if m.nextID != 3 {
		t.Errorf("expected next id 3, got %d", m.nextID)
	}
}

func TestNewManager_LoadFailureFallsBackToDefaults(t *testing.T) {
	var logged []string
	m := &Manager{
		storage: failStorage{},
		nextID:  1,
		now:     time.Now,
		logf: func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		},
	}
	m.load()
	m.repair()

	if len(m.active) != 0 || len(m.archived) != 0 || m.nextID != 1 {
		t.Errorf("expected defaults after load failure, got %d/%d/%d",
			len(m.active), len(m.archived), m.nextID)
	}
	if len(logged) != 3 {
		t.Errorf("expected 3 logged load failures, got %d: %v", len(logged), logged)
	}
}

func TestRepair_DropsInvalidEntries(t *testing.T) {
	now := time.Now()
	m := seedManager(t,
		[]Task{
			{ID: 1, Text: "Keep me", CreatedAt: now},
			{ID: 0, Text: "No id", CreatedAt: now},
			{ID: 2, Text: "   ", CreatedAt: now},
			{ID: 1, Text: "Duplicate", CreatedAt: now},
		},
		[]Task{
			{ID: 1, Text: "Also duplicate", CreatedAt: now},
			{ID: 3, Text: "Missing stamps", CreatedAt: now},
		},
		1, // stale counter, must be raised
	)

	if len(m.active) != 1 || m.active[0].ID != 1 {
		t.Fatalf("expected single active task with id 1, got %+v", m.active)
	}
	if len(m.archived) != 1 || m.archived[0].ID != 3 {
		t.Fatalf("expected single archived task with id 3, got %+v", m.archived)
	}
	if !m.archived[0].Completed || m.archived[0].CompletedAt == nil {
		t.Errorf("expected archived task to be forced consistent, got %+v", m.archived[0])
	}
	if m.nextID != 4 {
		t.Errorf("expected next id raised to 4, got %d", m.nextID)
	}
	checkInvariants(t, m)
}

func TestSubscribe_InvokedInRegistrationOrder(t *testing.T) {
	m, _ := newTestManager(t)

	var calls []string
	m.Subscribe(func() { calls = append(calls, "first") })
	m.Subscribe(func() { calls = append(calls, "second") })
	m.Subscribe(func() { calls = append(calls, "third") })

	m.Add("Water plants")

	want := []string{"first", "second", "third"}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(calls))
	}
	for i, name := range want {
		if calls[i] != name {
			t.Errorf("call %d: expected %q, got %q", i, name, calls[i])
		}
	}
}

func TestSubscribe_NilListenerIgnored(t *testing.T) {
	m, _ := newTestManager(t)

	m.Subscribe(nil)
	m.Add("Should not panic")
}

func TestActive_ReturnsDefensiveCopy(t *testing.T) {
	m, _ := newTestManager(t)
	m.Add("Original")

	snapshot := m.Active()
	snapshot[0].Text = "Mutated"

	if m.active[0].Text != "Original" {
		t.Errorf("snapshot mutation leaked into manager state: %q", m.active[0].Text)
	}
}

func TestCounts(t *testing.T) {
	m, _ := newTestManager(t)

	m.Add("One")
	second := m.Add("Two")
	m.Add("Three")
	m.Toggle(second.ID)

	counts := m.Counts()
	if counts.Pending != 2 {
		t.Errorf("expected 2 pending, got %d", counts.Pending)
	}
	if counts.Completed != 1 {
		t.Errorf("expected 1 completed, got %d", counts.Completed)
	}
	if counts.Archived != 0 {
		t.Errorf("expected 0 archived, got %d", counts.Archived)
	}

	m.ArchiveCompleted()
	counts = m.Counts()
	if counts.Completed != 0 || counts.Archived != 1 {
		t.Errorf("expected completed moved to archived, got %+v", counts)
	}
}

func TestPersist_WritesAllThreeKeys(t *testing.T) {
	m, storage := newTestManager(t)

	m.Add("Persist me")

	for _, key := range []string{KeyActive, KeyArchived, KeyNextID} {
		if _, ok := storage.docs[key]; !ok {
			t.Errorf("expected key %s to be written", key)
		}
	}
}

func TestPersist_FailureKeepsInMemoryState(t *testing.T) {
	var logged []string
	m := NewManager(nil)
	m.storage = failStorage{}
	m.logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	created := m.Add("Survives disk failure")
	if created == nil {
		t.Fatal("expected task despite persistence failure")
	}
	if len(m.Active()) != 1 {
		t.Errorf("expected in-memory state to stand, got %d tasks", len(m.Active()))
	}
	if len(logged) != 3 {
		t.Fatalf("expected 3 logged save failures, got %d", len(logged))
	}
	for _, line := range logged {
		if !strings.Contains(line, "disk full") {
			t.Errorf("expected save error in log line, got %q", line)
		}
	}
}

func TestPersist_FailureStillNotifies(t *testing.T) {
	m := NewManager(nil)
	m.storage = failStorage{}
	m.logf = func(string, ...any) {}

	notified := false
	m.Subscribe(func() { notified = true })

	m.Add("Best effort")
	if !notified {
		t.Error("expected notification despite persistence failure")
	}
}

func TestFind(t *testing.T) {
	m, _ := newTestManager(t)

	created := m.Add("Findable")
	m.Toggle(created.ID)
	m.ArchiveCompleted()

	found, ok := m.Find(created.ID)
	if !ok {
		t.Fatal("expected to find archived task")
	}
	if found.Text != "Findable" {
		t.Errorf("expected text preserved, got %q", found.Text)
	}

	if _, ok := m.Find(999); ok {
		t.Error("expected unknown id to not be found")
	}
}

func TestReload_RoundTripsState(t *testing.T) {
	storage := newMemStorage()

	m := NewManager(storage)
	m.logf = t.Logf
	m.Add("Still here")
	completed := m.Add("Checked")
	m.Toggle(completed.ID)
	m.ArchiveCompleted()

	reloaded := NewManager(storage)
	reloaded.logf = t.Logf

	if len(reloaded.Active()) != 1 || reloaded.Active()[0].Text != "Still here" {
		t.Fatalf("expected active list to survive reload, got %+v", reloaded.Active())
	}
	if len(reloaded.Archived()) != 1 || reloaded.Archived()[0].Text != "Checked" {
		t.Fatalf("expected archived history to survive reload, got %+v", reloaded.Archived())
	}

	// IDs keep advancing after a reload.
	next := reloaded.Add("Fresh id")
	if next.ID != 3 {
		t.Errorf("expected id 3 after reload, got %d", next.ID)
	}
	checkInvariants(t, reloaded)
}

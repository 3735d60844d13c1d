package watcher

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerFiresAfterDelay(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := NewDebouncer(20*time.Millisecond, func(path string) {
		mu.Lock()
		fired = append(fired, path)
		mu.Unlock()
	})

	d.Schedule("/tmp/a.txt")
	if !d.IsPending("/tmp/a.txt") {
		t.Error("path not pending immediately after Schedule")
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 || fired[0] != "/tmp/a.txt" {
		t.Errorf("fired = %v, want single callback", fired)
	}
	if d.Len() != 0 {
		t.Errorf("pending count = %d after firing", d.Len())
	}
}

func TestDebouncerCoalescesRepeatedEvents(t *testing.T) {
	var mu sync.Mutex
	count := 0

	d := NewDebouncer(30*time.Millisecond, func(path string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		d.Schedule("/tmp/burst.txt")
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("callback fired %d times, want 1", count)
	}
}

func TestDebouncerTracksPathsIndependently(t *testing.T) {
	var mu sync.Mutex
	fired := make(map[string]int)

	d := NewDebouncer(20*time.Millisecond, func(path string) {
		mu.Lock()
		fired[path]++
		mu.Unlock()
	})

	d.Schedule("/tmp/a.txt")
	d.Schedule("/tmp/b.txt")
	if d.Len() != 2 {
		t.Errorf("pending count = %d, want 2", d.Len())
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired["/tmp/a.txt"] != 1 || fired["/tmp/b.txt"] != 1 {
		t.Errorf("fired = %v", fired)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var mu sync.Mutex
	count := 0

	d := NewDebouncer(20*time.Millisecond, func(path string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	d.Schedule("/tmp/a.txt")
	d.Cancel("/tmp/a.txt")

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("cancelled path still fired %d times", count)
	}
}

func TestDebouncerCancelAll(t *testing.T) {
	var mu sync.Mutex
	count := 0

	d := NewDebouncer(20*time.Millisecond, func(path string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	d.Schedule("/tmp/a.txt")
	d.Schedule("/tmp/b.txt")
	d.CancelAll()

	if d.Len() != 0 {
		t.Errorf("pending count = %d after CancelAll", d.Len())
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("cancelled paths still fired %d times", count)
	}
}

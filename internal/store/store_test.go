package store

import (
	"fmt"
	"sync"
	"testing"
)

func TestPutOverwrites(t *testing.T) {
	s := New()
	k := NewKey(100, 0)

	s.Put(k, "A")
	s.Put(k, "B")

	got, ok := s.Get(k)
	if !ok {
		t.Fatal("Get() reported absent after Put")
	}
	if got != "B" {
		t.Errorf("Get() = %q, want B", got)
	}
}

func TestGetUnknownKey(t *testing.T) {
	s := New()

	got, ok := s.Get(NewKey(999, 7))
	if ok {
		t.Errorf("Get() on unknown key reported present, value %q", got)
	}
}

func TestThreadedKeysAreDistinct(t *testing.T) {
	s := New()

	s.Put(NewKey(100, 0), "chat-wide")
	s.Put(NewKey(100, 5), "thread-five")

	if got, _ := s.Get(NewKey(100, 0)); got != "chat-wide" {
		t.Errorf("chat key = %q, want chat-wide", got)
	}
	if got, _ := s.Get(NewKey(100, 5)); got != "thread-five" {
		t.Errorf("thread key = %q, want thread-five", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			k := NewKey(n, 0)
			s.Put(k, fmt.Sprintf("transcript-%d", n))
			if _, ok := s.Get(k); !ok {
				t.Errorf("Get() missed own write for chat %d", n)
			}
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		got, ok := s.Get(NewKey(i, 0))
		if !ok || got != fmt.Sprintf("transcript-%d", i) {
			t.Errorf("chat %d = %q (present=%v)", i, got, ok)
		}
	}
}

package locks

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	const workers = 20
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			km.Lock("acct-1")
			counter++
			km.Unlock("acct-1")
		}()
	}
	wg.Wait()
	if counter != workers {
		t.Fatalf("counter = %d, want %d", counter, workers)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("a")
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done // must not deadlock while "a" is held
	km.Unlock("a")
}

func TestKeyedMutexReleasesMapEntries(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("a")
	km.Unlock("a")
	km.mu.Lock()
	n := len(km.m)
	km.mu.Unlock()
	if n != 0 {
		t.Fatalf("map has %d entries after unlock, want 0", n)
	}
}

func TestKeyedMutexUnlockUnheldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unlock of unheld key")
		}
	}()
	NewKeyedMutex().Unlock("nope")
}

// Package locks provides per-key mutual exclusion, used to serialize note writes against account deletion.
package locks

import "sync"

// KeyedMutex serializes operations that share a key. Locks are created on first use
// and reference counted so the map does not grow with dead keys.
type KeyedMutex struct {
	mu sync.Mutex
	m  map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex returns an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{m: make(map[string]*keyLock)}
}

// Lock blocks until the lock for key is held. Every Lock must be paired with Unlock for the same key.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.m[key]
	if !ok {
		l = &keyLock{}
		k.m[key] = l
	}
	l.refs++
	k.mu.Unlock()
	l.mu.Lock()
}

// Unlock releases the lock for key. Panics if the key is not held.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	l, ok := k.m[key]
	if !ok {
		k.mu.Unlock()
		panic("locks: unlock of unheld key " + key)
	}
	l.refs--
	if l.refs == 0 {
		delete(k.m, key)
	}
	k.mu.Unlock()
	l.mu.Unlock()
}

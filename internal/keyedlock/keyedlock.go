// Package keyedlock provides one mutex per key, created on demand and
// released as soon as nobody holds or waits for it.
package keyedlock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type KeyedLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyedLock {
	return &KeyedLock{entries: make(map[string]*entry)}
}

// Lock blocks until the key is free and returns the matching unlock function.
func (k *KeyedLock) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}

// Len is the number of keys currently held or awaited.
func (k *KeyedLock) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

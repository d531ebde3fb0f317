package service

import "sync"

// keyedMutex is a refcounted table of mutexes keyed by string. The
// coordinator uses it to serialize check-then-insert sequences per
// (seat, date) key without funnelling unrelated bookings through a
// single lock. Entries are removed once the last holder releases, so
// the table stays proportional to in-flight mutations.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[string]*keyedLock)}
}

// lock acquires the mutex for key and returns the matching release
// function. The release function must be called exactly once.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &keyedLock{}
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

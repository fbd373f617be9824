// Package keylock provides a mutex keyed by string, used to serialize work
// per warehouse. An assignment batch for one warehouse holds that warehouse's
// lock for its whole duration so two concurrent batches cannot double-book an
// agent; batches for different warehouses proceed in parallel.
package keylock

import "sync"

// KeyedMutex is a set of named mutexes. The zero value is not usable;
// create instances with NewKeyedMutex.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, creating it on first use, and returns the
// unlock function. Locks are never removed; the key space (warehouse ids) is
// small and stable.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

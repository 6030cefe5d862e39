package media

import "sync"

// ownerLocks serializes mutating operations per owner. Two uploads for
// different properties proceed in parallel; two for the same property do not.
// Entries are never freed — the owner set is small and bounded by the CRM's
// property/client count.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the owner's mutex and returns the unlock function.
func (l *ownerLocks) Lock(owner OwnerRef) func() {
	key := owner.String()

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

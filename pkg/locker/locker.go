package locker

import "sync"

// Locker keyed mutual exclusion. One operation per credit account at a time:
// the lock is held from the pre-check through the external adapter call until
// the post-trade invariant check, so reentrant calls against the same account
// wait for the first to finish.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New new locker
func New() *Locker {
	return &Locker{
		locks: make(map[string]*entry),
	}
}

// Lock acquire the lock for key, returns the release func. Release always in
// a defer so a failed operation cannot strand the account.
func (l *Locker) Lock(key string) func() {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

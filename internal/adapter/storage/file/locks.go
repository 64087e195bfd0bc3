package file

import "sync"

// LockRegistry implements ports.LockRegistry as a mutex-guarded map.
// Locks are advisory and process-local: they are never written to disk,
// a restart clears them, and a second process sharing the data directory
// cannot see them.
type LockRegistry struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewLockRegistry creates an empty lock registry.
func NewLockRegistry() *LockRegistry {
	return &LockRegistry{held: make(map[string]bool)}
}

// Acquire is non-blocking: it returns true if the lock was free and is
// now held, false if some caller already holds it.
func (l *LockRegistry) Acquire(accountNumber string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[accountNumber] {
		return false
	}
	l.held[accountNumber] = true
	return true
}

// Release returns true if a lock existed and was released.
func (l *LockRegistry) Release(accountNumber string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.held[accountNumber] {
		return false
	}
	delete(l.held, accountNumber)
	return true
}

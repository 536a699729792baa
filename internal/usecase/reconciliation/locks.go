package reconciliation

import "sync"

// paymentLocks serializes reconciliation per payment id. The webhook
// and the verify-after-create call can arrive for the same pidx within
// milliseconds; holding the per-id lock across the read-decide-write
// sequence collapses that race into one effective transition plus one
// idempotent no-op.
type paymentLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (l *paymentLocks) Lock(id string) {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[string]*lockEntry)
	}
	e, ok := l.entries[id]
	if !ok {
		e = &lockEntry{}
		l.entries[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

func (l *paymentLocks) Unlock(id string) {
	l.mu.Lock()
	e := l.entries[id]
	e.refs--
	if e.refs == 0 {
		delete(l.entries, id)
	}
	l.mu.Unlock()

	e.mu.Unlock()
}

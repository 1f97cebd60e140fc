package memory

import (
	"sync"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// keyLocker hands out one mutex per balance key. Callers must pass keys already sorted
// (accounting.SortedBalanceKeys) so every writer acquires them in the same order.
// Entries are reference counted and dropped once no writer holds or waits on them, so the
// map only ever holds the keys of postings in flight.
type keyLocker struct {
	mu    sync.Mutex
	locks map[domain.BalanceKey]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int // holders plus waiters, guarded by keyLocker.mu
}

func newKeyLocker() *keyLocker {
	return &keyLocker{locks: make(map[domain.BalanceKey]*keyLock)}
}

func (k *keyLocker) acquire(key domain.BalanceKey) *keyLock {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	return l
}

func (k *keyLocker) release(key domain.BalanceKey, l *keyLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// Lock acquires every key in order and returns the matching unlock function.
func (k *keyLocker) Lock(keys []domain.BalanceKey) (unlock func()) {
	held := make([]*keyLock, 0, len(keys))
	for _, key := range keys {
		l := k.acquire(key)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
			k.release(keys[i], held[i])
		}
	}
}

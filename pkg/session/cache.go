package session

import "sync"

// vmap is a mutex-guarded generic map. It backs the derived-key cache:
// key derivation is a pure function of (secret, salt), so results are
// memoized for callers that sign or verify with the same secret
// repeatedly. Growth is unbounded but each entry is a 20-byte digest
// added once per distinct explicit secret; the cracking hot path
// bypasses the cache entirely (see Verifier.Check).
type vmap[kT comparable, vT any] struct {
	kv map[kT]vT
	mu sync.RWMutex
}

func newVMap[kT comparable, vT any]() *vmap[kT, vT] {
	return &vmap[kT, vT]{kv: make(map[kT]vT)}
}

// Get retrieves a value with read lock protection.
func (vm *vmap[kT, vT]) Get(key kT) (vT, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	val, ok := vm.kv[key]
	return val, ok
}

// Set stores a value with write lock protection.
func (vm *vmap[kT, vT]) Set(key kT, val vT) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.kv[key] = val
}

// Len returns the number of cached entries.
func (vm *vmap[kT, vT]) Len() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return len(vm.kv)
}

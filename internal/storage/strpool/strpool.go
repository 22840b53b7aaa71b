// Package strpool implements a reference-counted string interning pool.
//
// Every table that should share string ids holds the same *Pool. An id stays
// valid while at least one encoded slot references it; the entry disappears
// when the last reference is released. Ids are never reused.
package strpool

import "sync"

type entry struct {
	value string
	refs  int
}

// Pool maps strings to small integer ids with reference counts.
// It is safe for concurrent use.
type Pool struct {
	mu     sync.Mutex
	byID   map[uint64]*entry
	byStr  map[string]uint64
	nextID uint64
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{
		byID:  make(map[uint64]*entry),
		byStr: make(map[string]uint64),
	}
}

// Intern returns the id of value, taking one reference on it.
func (p *Pool) Intern(value string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if id, ok := p.byStr[value]; ok {
		if e, ok := p.byID[id]; ok {
			e.refs++
			return id
		}
		// stale reverse mapping
		delete(p.byStr, value)
	}

	p.nextID++
	id := p.nextID
	p.byID[id] = &entry{value: value, refs: 1}
	p.byStr[value] = id
	return id
}

// Release drops one reference on id. Unknown ids are ignored.
func (p *Pool) Release(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.byID[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(p.byID, id)
	delete(p.byStr, e.value)
}

// Resolve returns the string behind id.
func (p *Pool) Resolve(id uint64) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.byID[id]
	if !ok {
		return "", false
	}
	return e.value, true
}

// RefCount returns the number of references held on id (0 if absent).
func (p *Pool) RefCount(id uint64) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.byID[id]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of distinct strings currently interned.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}

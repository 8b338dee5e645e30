package resource

import (
	"sync"
)

// Handle is an opaque capability token denoting an engine-owned object.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Null is the documented sentinel for handle-returning operations.
const Null Handle = 0

// Kind tags the engine object a table entry denotes. Lookups check the tag
// so a handle can never be reinterpreted as the wrong object kind.
type Kind uint32

const (
	KindInvalid Kind = iota
	KindContext
	KindSolarPosition
	KindTreeGenerator
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindSolarPosition:
		return "solar position calculator"
	case KindTreeGenerator:
		return "tree generator"
	default:
		return "invalid"
	}
}

// Destroyer is optionally implemented by stored values that need engine
// cleanup when their handle is destroyed.
type Destroyer interface {
	Destroy()
}

// Table maps handles to engine objects. It is an arena with a free list:
// slot i holds handle i+1, destroyed slots are recycled. The table is the
// only boundary state shared across host threads and carries its own lock;
// the objects it stores inherit the engine's concurrency contract.
type Table struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
}

type entry struct {
	value any
	kind  Kind
	valid bool
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert stores a value under a fresh handle.
func (t *Table) Insert(kind Kind, value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := entry{kind: kind, value: value, valid: true}

	if len(t.freeList) > 0 {
		h := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
		return h
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// Get retrieves a value by handle regardless of kind.
func (t *Table) Get(h Handle) (any, bool) {
	if h == Null {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// GetKind retrieves a value only if its kind tag matches.
func (t *Table) GetKind(h Handle, kind Kind) (any, bool) {
	if h == Null {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid || e.kind != kind {
		return nil, false
	}
	return e.value, true
}

// Kind reports the kind tag for a handle.
func (t *Table) Kind(h Handle) (Kind, bool) {
	if h == Null {
		return KindInvalid, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if int(idx) >= len(t.entries) || !t.entries[idx].valid {
		return KindInvalid, false
	}
	return t.entries[idx].kind, true
}

// Remove destroys a handle, running the value's Destroyer hook exactly once.
// Removing the null handle or an unknown handle is a no-op; it never faults
// and reports false.
func (t *Table) Remove(h Handle) bool {
	if h == Null {
		return false
	}

	t.mu.Lock()

	idx := h - 1
	if int(idx) >= len(t.entries) {
		t.mu.Unlock()
		return false
	}

	e := &t.entries[idx]
	if !e.valid {
		t.mu.Unlock()
		return false
	}

	value := e.value
	e.valid = false
	e.value = nil
	e.kind = KindInvalid
	t.freeList = append(t.freeList, h)
	t.mu.Unlock()

	// Destructor runs outside the lock: engine cleanup may be slow and must
	// not block unrelated lookups.
	if d, ok := value.(Destroyer); ok {
		d.Destroy()
	}
	return true
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Clear destroys all live handles.
func (t *Table) Clear() {
	t.mu.RLock()
	handles := make([]Handle, 0, len(t.entries))
	for i, e := range t.entries {
		if e.valid {
			handles = append(handles, Handle(i+1))
		}
	}
	t.mu.RUnlock()

	for _, h := range handles {
		t.Remove(h)
	}
}

// Of retrieves a value by handle with both kind and Go-type checks applied.
func Of[T any](t *Table, h Handle, kind Kind) (T, bool) {
	var zero T
	v, ok := t.GetKind(h, kind)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

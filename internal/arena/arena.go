// Package arena implements a bump-allocation region shared by all IR
// nodes produced during one compiler invocation.
//
// Nodes never outlive the arena they were allocated from, and nothing
// in the compiler frees a node individually — the driver creates one
// pool per Compile call, shared by every module, and the whole region
// is dropped at once when that call returns. This mirrors
// the single coarse lifetime described for the IR in the data model:
// no per-node bookkeeping, one chunked backing slice per type.
package arena

import "reflect"

// chunkSize is the number of elements per backing slice. Chosen to
// keep individual allocations cheap without over-allocating for small
// single-file programs.
const chunkSize = 256

// Arena allocates values of type T out of chunked backing slices.
// A *T returned by New stays valid for the arena's lifetime: chunks
// are never reallocated once appended, only appended to, so existing
// pointers are never invalidated by growth.
type Arena[T any] struct {
	chunks [][]T
}

// New returns a zero-valued *T owned by the arena.
func (a *Arena[T]) New() *T {
	if len(a.chunks) == 0 || len(a.chunks[len(a.chunks)-1]) == cap(a.chunks[len(a.chunks)-1]) {
		a.chunks = append(a.chunks, make([]T, 0, chunkSize))
	}
	last := &a.chunks[len(a.chunks)-1]
	*last = append(*last, *new(T))
	return &(*last)[len(*last)-1]
}

// Len returns the total number of values allocated so far.
func (a *Arena[T]) Len() int {
	n := 0
	for _, c := range a.chunks {
		n += len(c)
	}
	return n
}

// Reset discards all allocations; the dropped chunks are not reused,
// and later calls to New allocate fresh chunks. Existing *T pointers
// from before the reset must not be used afterward.
func (a *Arena[T]) Reset() {
	a.chunks = a.chunks[:0]
}

// Pool groups one Arena[T] per distinct node type behind a single
// lifetime, so the IR builder doesn't need a hand-declared field per
// node kind. Access is single-threaded, matching the compiler's
// overall scheduling model (one module, one function, one instruction
// at a time — see the concurrency model in the design).
type Pool struct {
	byType map[reflect.Type]any
}

// Alloc returns a zero-valued *T from p's arena for type T, creating
// that arena on first use.
func Alloc[T any](p *Pool) *T {
	if p.byType == nil {
		p.byType = make(map[reflect.Type]any)
	}
	t := reflect.TypeFor[T]()
	raw, ok := p.byType[t]
	if !ok {
		raw = &Arena[T]{}
		p.byType[t] = raw
	}
	return raw.(*Arena[T]).New()
}

// Reset discards every per-type arena in the pool.
func (p *Pool) Reset() {
	p.byType = nil
}

// Package com wraps foreign reference-counted interface pointers in
// release-exactly-once guards. A leaked or double-released reference
// corrupts shared foreign-process state, so every acquired interface is
// held in a Ref and released on every exit path, in reverse acquisition
// order, usually via defer.
package com

import "sync"

// Ref owns one foreign interface reference. Release is safe to call any
// number of times but invokes the underlying release exactly once.
type Ref struct {
	ptr     uintptr
	release func(uintptr)
	once    sync.Once
}

// NewRef wraps an acquired interface pointer. release performs the single
// native release; it is never called for a zero pointer.
func NewRef(ptr uintptr, release func(uintptr)) *Ref {
	return &Ref{ptr: ptr, release: release}
}

// Ptr returns the raw interface pointer, or zero after construction from
// a failed acquisition.
func (r *Ref) Ptr() uintptr {
	return r.ptr
}

// Valid reports whether the guard holds a live pointer.
func (r *Ref) Valid() bool {
	return r != nil && r.ptr != 0
}

// Release releases the underlying reference. The first call wins; later
// calls are no-ops.
func (r *Ref) Release() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		if r.ptr != 0 && r.release != nil {
			r.release(r.ptr)
		}
		r.ptr = 0
	})
}

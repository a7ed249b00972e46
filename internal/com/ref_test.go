package com

import "testing"

func TestRef_ReleaseExactlyOnce(t *testing.T) {
	var releases int
	r := NewRef(0xdead, func(ptr uintptr) {
		if ptr != 0xdead {
			t.Errorf("release called with %#x, want %#x", ptr, 0xdead)
		}
		releases++
	})

	if !r.Valid() {
		t.Fatal("fresh ref should be valid")
	}

	r.Release()
	r.Release()
	r.Release()

	if releases != 1 {
		t.Fatalf("release called %d times, want 1", releases)
	}
	if r.Valid() {
		t.Error("released ref should not be valid")
	}
}

func TestRef_ZeroPointerNeverReleased(t *testing.T) {
	r := NewRef(0, func(uintptr) {
		t.Fatal("release must not run for a zero pointer")
	})
	if r.Valid() {
		t.Error("zero ref should not be valid")
	}
	r.Release()
}

func TestRef_NilSafe(t *testing.T) {
	var r *Ref
	if r.Valid() {
		t.Error("nil ref should not be valid")
	}
	r.Release() // must not panic
}

package heap

import "testing"

func TestAllocLookup(t *testing.T) {
	h := New()
	a := h.Alloc(NInt(42))
	n := h.Lookup(a)
	if n.Kind != KInt || n.Int != 42 {
		t.Fatalf("Lookup(%d) = %+v, want NInt(42)", a, n)
	}
}

func TestUpdateSharing(t *testing.T) {
	h := New()
	a := h.Alloc(NInt(1))
	b := h.Alloc(NInt(2))
	h.Update(a, NIndirect(b))
	n := h.Lookup(a)
	if n.Kind != KIndirect || n.Target != b {
		t.Fatalf("after Update, Lookup(%d) = %+v, want NIndirect(%d)", a, n, b)
	}
	// Address is unchanged: a still refers to the same cell, now
	// pointing through to b, which is the sharing mechanism letrec
	// and CAF memoization both depend on.
	if a == b {
		t.Fatalf("a and b should be distinct addresses")
	}
}

func TestLookupOutOfRangePanics(t *testing.T) {
	h := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range Lookup")
		}
	}()
	h.Lookup(99)
}

func TestConstructors(t *testing.T) {
	h := New()
	f := h.Alloc(NInt(1))
	x := h.Alloc(NInt(2))
	ap := h.Alloc(NAp(f, x))
	n := h.Lookup(ap)
	if n.Kind != KAp || n.Fun != f || n.Arg != x {
		t.Fatalf("NAp roundtrip failed: %+v", n)
	}

	comps := []Addr{f, x}
	c := h.Alloc(NConstr(3, comps))
	cn := h.Lookup(c)
	if cn.Kind != KConstr || cn.Tag != 3 || len(cn.Comp) != 2 {
		t.Fatalf("NConstr roundtrip failed: %+v", cn)
	}

	hole := h.Alloc(NHole())
	if h.Lookup(hole).Kind != KHole {
		t.Fatalf("NHole roundtrip failed")
	}

	if h.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", h.Size())
	}
}

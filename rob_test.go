package tomasulo

import "testing"

func TestROBAllocWrapsAndTracksCount(t *testing.T) {
	r := NewROB(3)
	if !r.Empty() {
		t.Fatal("new ROB should be empty")
	}
	i0, ok := r.Alloc()
	if !ok || i0 != 0 {
		t.Fatalf("first alloc = (%d, %v), want (0, true)", i0, ok)
	}
	if _, ok := r.Alloc(); !ok {
		t.Fatal("second alloc should succeed")
	}
	if _, ok := r.Alloc(); !ok {
		t.Fatal("third alloc should succeed")
	}
	if r.Full() != true {
		t.Fatal("ROB should be full after 3 allocs in a 3-slot ROB")
	}
	if _, ok := r.Alloc(); ok {
		t.Fatal("alloc on a full ROB must fail")
	}

	r.CommitHead()
	if r.Full() {
		t.Fatal("ROB should have a free slot after CommitHead")
	}
	i3, ok := r.Alloc()
	if !ok || i3 != 0 {
		t.Fatalf("alloc after wraparound = (%d, %v), want (0, true)", i3, ok)
	}
}

func TestROBUndoAllocReverts(t *testing.T) {
	r := NewROB(2)
	r.Alloc()
	r.UndoAlloc()
	if !r.Empty() {
		t.Fatal("UndoAlloc should leave the ROB empty after a single alloc")
	}
	idx, ok := r.Alloc()
	if !ok || idx != 0 {
		t.Fatalf("alloc after undo = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestROBReleaseYoungerThanHead(t *testing.T) {
	r := NewROB(4)
	r.Alloc() // head, idx 0
	r.Alloc() // idx 1
	r.Alloc() // idx 2

	var released []int
	r.ReleaseYoungerThanHead(func(idx int, e ROBEntry) {
		released = append(released, idx)
	})

	if len(released) != 2 {
		t.Fatalf("released %v, want exactly the 2 non-head entries", released)
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 (only the head remains)", r.Count())
	}
	if !r.At(r.Head()).Busy {
		t.Fatal("head entry should remain busy after release")
	}
}

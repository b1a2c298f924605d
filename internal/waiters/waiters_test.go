package waiters

import (
	"testing"
)

// ─────────────────────────────────────────────────────────────────────────
// These mirror the wakeup-fanout tests SUPRAX's OoO scheduler carried: a
// producer tag accumulates consumers across Dispatch-equivalents, and a
// single Broadcast must return every one of them and leave the tag empty.
// ─────────────────────────────────────────────────────────────────────────

func TestBroadcastReturnsAllWaiters(t *testing.T) {
	tbl := New(8, 14)
	tbl.WaitSrc1(3, 0)
	tbl.WaitSrc1(3, 5)
	tbl.WaitSrc2(3, 5)
	tbl.WaitSrc2(3, 9)

	src1, src2 := tbl.Broadcast(3)
	if got, want := src1, []int{0, 5}; !equal(got, want) {
		t.Errorf("src1 = %v, want %v", got, want)
	}
	if got, want := src2, []int{5, 9}; !equal(got, want) {
		t.Errorf("src2 = %v, want %v", got, want)
	}
}

func TestBroadcastClearsTag(t *testing.T) {
	tbl := New(8, 14)
	tbl.WaitSrc1(2, 1)
	tbl.Broadcast(2)

	src1, src2 := tbl.Broadcast(2)
	if len(src1) != 0 || len(src2) != 0 {
		t.Errorf("expected no waiters after a second broadcast, got src1=%v src2=%v", src1, src2)
	}
}

func TestForgetDropsWaitersWithoutReturningThem(t *testing.T) {
	tbl := New(8, 14)
	tbl.WaitSrc1(1, 0)
	tbl.WaitSrc2(1, 1)
	tbl.Forget(1)

	src1, src2 := tbl.Broadcast(1)
	if len(src1) != 0 || len(src2) != 0 {
		t.Errorf("Forget should have cleared pending waiters, got src1=%v src2=%v", src1, src2)
	}
}

func TestTagsAreIndependent(t *testing.T) {
	tbl := New(8, 14)
	tbl.WaitSrc1(0, 10)
	tbl.WaitSrc1(1, 11)

	src1, _ := tbl.Broadcast(0)
	if !equal(src1, []int{10}) {
		t.Errorf("tag 0 waiters = %v, want [10]", src1)
	}
	src1, _ = tbl.Broadcast(1)
	if !equal(src1, []int{11}) {
		t.Errorf("tag 1 waiters = %v, want [11]", src1)
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

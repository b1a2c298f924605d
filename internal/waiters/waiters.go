// ═══════════════════════════════════════════════════════════════════════════
// WAITERS — bitmap-indexed CDB fan-out, adapted from SUPRAX's OoO wakeup
// ═══════════════════════════════════════════════════════════════════════════
//
// GROUNDING: SupraX's OutOfOrderScheduler tracked, per physical-register
// producer tag, a bitmap of reservation-station consumers waiting on that
// tag (src1WaitsFor/src2WaitsFor [64]uint64) so that a writeback could wake
// every dependent in O(1) instead of scanning the whole window. The
// Tomasulo pipeline here has the same shape with the producer renamed from
// "RS tag" to "ROB tag": a value written back lives in the ROB until
// Commit, and every reservation station with a pending Qj/Qk equal to that
// ROB index needs to be resolved the moment the value is broadcast. This
// package is that bitmap, carried over directly.
package waiters

import "math/bits"

// Table tracks, per ROB tag, which global reservation-station slots are
// waiting on that tag for their first operand (Src1) or second (Src2).
type Table struct {
	src1 []uint64 // indexed by ROB tag; bit i set = RS slot i waits on Src1
	src2 []uint64 // indexed by ROB tag; bit i set = RS slot i waits on Src2
}

// New allocates a waiter table for the given ROB size. rsCount must not
// exceed 64 — every reservation-station pool in this simulator is far
// smaller than that (spec.md §4.6's families sum to 14 by default).
func New(robSize, rsCount int) *Table {
	if rsCount > 64 {
		panic("waiters: reservation station count exceeds 64-bit bitmap width")
	}
	return &Table{
		src1: make([]uint64, robSize),
		src2: make([]uint64, robSize),
	}
}

// WaitSrc1 records that RS slot rsSlot is blocked on tag for its first
// operand.
func (t *Table) WaitSrc1(tag, rsSlot int) { t.src1[tag] |= 1 << uint(rsSlot) }

// WaitSrc2 records that RS slot rsSlot is blocked on tag for its second
// operand.
func (t *Table) WaitSrc2(tag, rsSlot int) { t.src2[tag] |= 1 << uint(rsSlot) }

// Broadcast returns every RS slot waiting on tag for Src1 and for Src2, and
// clears the table for that tag (the value has now been delivered, so the
// dependency is resolved). Order is lowest-slot-first.
func (t *Table) Broadcast(tag int) (src1Slots, src2Slots []int) {
	src1Slots = bitsToSlots(t.src1[tag])
	src2Slots = bitsToSlots(t.src2[tag])
	t.src1[tag] = 0
	t.src2[tag] = 0
	return src1Slots, src2Slots
}

// Forget drops any pending waiters on tag without broadcasting — used when
// a speculative flush discards the ROB entry that would have produced this
// tag, so no resolution will ever arrive for it (the waiting RS slots are
// themselves flushed in the same step; this just prevents stale bits from
// lingering if the tag index is reused by a later Issue).
func (t *Table) Forget(tag int) {
	t.src1[tag] = 0
	t.src2[tag] = 0
}

func bitsToSlots(bitmap uint64) []int {
	var out []int
	for bitmap != 0 {
		i := bits.TrailingZeros64(bitmap)
		out = append(out, i)
		bitmap &^= 1 << uint(i)
	}
	return out
}

// ═══════════════════════════════════════════════════════════════════════════
// RESERVATION STATIONS — one busy slot per in-flight op, pooled by family
// ═══════════════════════════════════════════════════════════════════════════
//
// Free-slot selection within a family uses the same occupancy-bitmap +
// trailing-zeros trick SupraX's OutOfOrderScheduler used to find a free
// physical-register slot in O(1): the family is never wider than a handful
// of entries, so a uint64 bitmap with bits.TrailingZeros64 picks the
// lowest-index free slot directly instead of a linear scan, while still
// implementing spec.md's "first free by index" tie-break exactly.

package tomasulo

import "math/bits"

// RS is one reservation-station slot. Invariant (spec.md §3): whenever Busy
// and Qj/Qk is NoTag, the matching Vj/Vk already holds the final operand.
type RS struct {
	Busy    bool
	Opcode  Opcode
	RobDest int
	Vj, Vk  int
	Qj, Qk  Tag
	A       int // address/immediate

	ExecRemaining  int
	ExecStarted    bool
	WriteRemaining int

	InstrID int
}

func (rs *RS) clear() {
	*rs = RS{RobDest: unset, Qj: NoTag, Qk: NoTag, InstrID: unset}
}

// RSPool is the full set of reservation stations, partitioned into
// contiguous index ranges by family.
type RSPool struct {
	slots    []RS
	ranges   map[Family][2]int // [start, end) within slots
	occupied map[Family]uint64 // bit i set = slots[start+i] busy
}

// NewRSPool allocates a pool with the given per-family sizes. Family sizes
// are expected to be small (spec.md §4.6's largest family is 4); panics if a
// family would need more than 64 slots since the occupancy bitmap couldn't
// represent it — not a condition any realistic configuration hits.
func NewRSPool(counts map[Family]int) *RSPool {
	p := &RSPool{
		ranges:   make(map[Family][2]int),
		occupied: make(map[Family]uint64),
	}
	total := 0
	for f := Family(0); f < numFamilies; f++ {
		n := counts[f]
		if n > 64 {
			panic("reservation station family exceeds 64 slots")
		}
		p.ranges[f] = [2]int{total, total + n}
		total += n
	}
	p.slots = make([]RS, total)
	for i := range p.slots {
		p.slots[i].clear()
	}
	return p
}

// Len returns the total number of reservation-station slots across every
// family.
func (p *RSPool) Len() int { return len(p.slots) }

// At returns a pointer to the global slot i for direct mutation by the
// pipeline stages.
func (p *RSPool) At(i int) *RS { return &p.slots[i] }

// Range returns the [start, end) global slot range owned by family f.
func (p *RSPool) Range(f Family) (int, int) {
	r := p.ranges[f]
	return r[0], r[1]
}

// FreeSlot returns the lowest-index free slot in family f, or (-1, false) if
// the family is fully occupied — a structural stall, not an error.
func (p *RSPool) FreeSlot(f Family) (int, bool) {
	start, end := p.Range(f)
	width := uint(end - start)
	if width == 0 {
		return -1, false
	}
	mask := uint64(1)<<width - 1
	free := ^p.occupied[f] & mask
	if free == 0 {
		return -1, false
	}
	offset := bits.TrailingZeros64(free)
	return start + offset, true
}

// Alloc marks slot i (within family f) busy in the occupancy bitmap. Callers
// must pick i via FreeSlot first.
func (p *RSPool) Alloc(f Family, i int) {
	start, _ := p.Range(f)
	p.occupied[f] |= 1 << uint(i-start)
}

// Release clears slot i's occupancy bit and resets its contents, freeing it
// for the next Issue.
func (p *RSPool) Release(f Family, i int) {
	start, _ := p.Range(f)
	p.occupied[f] &^= 1 << uint(i-start)
	p.slots[i].clear()
}

// familyOfSlot finds which family owns global slot index i. No pipeline
// stage or invariant check calls it.
func (p *RSPool) familyOfSlot(i int) Family {
	for f := Family(0); f < numFamilies; f++ {
		r := p.ranges[f]
		if i >= r[0] && i < r[1] {
			return f
		}
	}
	return -1
}

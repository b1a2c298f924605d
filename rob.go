// ═══════════════════════════════════════════════════════════════════════════
// REORDER BUFFER — circular queue of in-flight instructions
// ═══════════════════════════════════════════════════════════════════════════

package tomasulo

// ROBType tags what kind of architectural effect a ROB entry commits.
// Replaces the reference simulator's string-tagged entry ("REG", "STORE",
// "BR", "CALL", "RET") with an exhaustively-matched enum (spec.md §9).
type ROBType int

const (
	ROBReg ROBType = iota
	ROBStore
	ROBBranch
	ROBCall
	ROBRet
)

func (t ROBType) String() string {
	switch t {
	case ROBReg:
		return "REG"
	case ROBStore:
		return "STORE"
	case ROBBranch:
		return "BR"
	case ROBCall:
		return "CALL"
	case ROBRet:
		return "RET"
	default:
		return "?"
	}
}

// ROBEntry is one slot of the reorder buffer. Dest holds a register index
// for ROBReg/ROBCall or a memory address for ROBStore once the address has
// been computed at Writeback; it is meaningless for ROBBranch/ROBRet.
type ROBEntry struct {
	Busy    bool
	Type    ROBType
	Dest    int
	Value   int
	Ready   bool
	InstrID int

	PCOnIssue       int // instruction address at issue time
	BrTarget        int // control-flow destination for BR/CALL
	CommitRemaining int
}

func (e *ROBEntry) clear() {
	*e = ROBEntry{}
}

// ROB is the fixed-size circular reorder buffer: allocated in order at the
// tail (Issue), released in order from the head (Commit), with entries
// between head and tail (circularly) forming the in-flight set.
type ROB struct {
	entries    []ROBEntry
	head, tail int
	count      int
}

// NewROB allocates an empty ROB with the given slot count.
func NewROB(size int) *ROB {
	return &ROB{entries: make([]ROBEntry, size)}
}

// Size returns the configured slot count.
func (r *ROB) Size() int { return len(r.entries) }

// Full reports whether the ROB has no free slot, stalling Issue.
func (r *ROB) Full() bool { return r.count == len(r.entries) }

// Empty reports whether no instruction is currently in flight.
func (r *ROB) Empty() bool { return r.count == 0 }

// Count returns the number of busy entries currently in flight.
func (r *ROB) Count() int { return r.count }

// Head returns the index of the oldest in-flight entry. Only valid when
// !Empty().
func (r *ROB) Head() int { return r.head }

// At returns a pointer to entry i for direct field access/mutation by the
// pipeline stages (Execute resolving tags, Write marking ready, Commit
// applying effects).
func (r *ROB) At(i int) *ROBEntry { return &r.entries[i] }

// Alloc reserves the tail slot for a newly issued instruction and returns
// its index, or (-1, false) if the ROB is full — a structural stall, not an
// error (spec.md §5).
func (r *ROB) Alloc() (int, bool) {
	if r.Full() {
		return -1, false
	}
	idx := r.tail
	r.entries[idx] = ROBEntry{Busy: true}
	r.tail = (r.tail + 1) % len(r.entries)
	r.count++
	return idx, true
}

// UndoAlloc reverts the most recent Alloc — used when Issue finds no free
// reservation station after already reserving a ROB slot, so the stall
// leaves no partial state behind (spec.md §4.2).
func (r *ROB) UndoAlloc() {
	n := len(r.entries)
	r.tail = (r.tail - 1 + n) % n
	r.entries[r.tail].clear()
	r.count--
}

// CommitHead releases the head slot and advances head. Callers must only
// call this once they've applied the head entry's architectural effect.
func (r *ROB) CommitHead() {
	r.entries[r.head].clear()
	r.head = (r.head + 1) % len(r.entries)
	r.count--
}

// ReleaseYoungerThanHead discards every busy entry except the head on a
// speculative flush and calls onRelease for each one before clearing it (so
// the caller can undo its register-status binding and reset the owning
// instruction's timing per spec.md §4.7 steps 2-3).
//
// Why this never needs the general "walk and rebuild, preserving relative
// order" machinery spec.md §9 worries about: the ROB only ever holds
// uncommitted entries, allocated in strictly increasing issue order within
// an epoch (spec.md testable property 3). The head is by construction the
// oldest entry in the buffer, so every *other* busy entry was issued after
// it and therefore has a strictly greater instruction address — exactly the
// flush condition. There is never a survivor to preserve; flush always
// empties the ROB down to (at most) the head entry that is itself
// completing commit this same cycle. This function relies on that invariant
// and does not check it: every busy non-head entry is released.
func (r *ROB) ReleaseYoungerThanHead(onRelease func(idx int, e ROBEntry)) {
	if r.Empty() {
		return
	}
	n := len(r.entries)
	for i, remaining := (r.head+1)%n, r.count-1; remaining > 0; i, remaining = (i+1)%n, remaining-1 {
		e := r.entries[i]
		if e.Busy {
			onRelease(i, e)
			r.entries[i].clear()
		}
	}
	r.tail = (r.head + 1) % n
	r.count = 1
}

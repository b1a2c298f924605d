// ═══════════════════════════════════════════════════════════════════════════
// REGISTER FILE + REGISTER STATUS (rename table)
// ═══════════════════════════════════════════════════════════════════════════
//
// RegisterStatus plays the role SupraX's OutOfOrderScheduler.rat/ratValid
// played for its physical-register renaming: a per-register pointer to the
// in-flight producer, or "not pending" when the register file already holds
// the latest value. Here the producer is a ROB index rather than a
// reservation-station tag, since values live in the ROB from Writeback
// until Commit (spec.md §3's ownership invariant).

package tomasulo

// RegisterFile holds the architectural register values. R0 is hardwired to
// zero: Set on register 0 is a no-op and Get always returns 0 for it.
type RegisterFile struct {
	regs []int
}

// NewRegisterFile allocates a zero-initialized register file.
func NewRegisterFile(n int) *RegisterFile {
	return &RegisterFile{regs: make([]int, n)}
}

// Get returns the architectural value of r. R0 always reads as 0.
func (rf *RegisterFile) Get(r int) int {
	if r == 0 {
		return 0
	}
	return rf.regs[r]
}

// Set writes the architectural value of r, masked to 16 bits. Writes to R0
// are ignored.
func (rf *RegisterFile) Set(r, value int) {
	if r == 0 {
		return
	}
	rf.regs[r] = wrap16(value)
}

// Snapshot returns a copy of every register for the final report.
func (rf *RegisterFile) Snapshot() []int {
	out := make([]int, len(rf.regs))
	copy(out, rf.regs)
	return out
}

// RegisterStatus maps each architectural register to the ROB index that
// will produce its next value, or NoTag if the register file already holds
// the current value. R0 is never tagged.
type RegisterStatus struct {
	tag []Tag
}

// NewRegisterStatus allocates a status table with every register untagged.
func NewRegisterStatus(n int) *RegisterStatus {
	tag := make([]Tag, n)
	for i := range tag {
		tag[i] = NoTag
	}
	return &RegisterStatus{tag: tag}
}

// TagOf returns the producing ROB index for r, or NoTag. R0 is always
// NoTag.
func (rs *RegisterStatus) TagOf(r int) Tag {
	if r == 0 {
		return NoTag
	}
	return rs.tag[r]
}

// Bind records that robIdx will produce r's next value. A no-op for R0.
func (rs *RegisterStatus) Bind(r int, robIdx int) {
	if r == 0 {
		return
	}
	rs.tag[r] = Tag(robIdx)
}

// ClearIfOwner clears r's tag only if it still points at robIdx — the
// read-modify-write pattern both Commit and flush need so a newer issue of
// the same register (which rebound the tag before this one settled) isn't
// clobbered.
func (rs *RegisterStatus) ClearIfOwner(r int, robIdx int) {
	if r == 0 {
		return
	}
	if rs.tag[r] == Tag(robIdx) {
		rs.tag[r] = NoTag
	}
}

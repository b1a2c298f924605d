// ═══════════════════════════════════════════════════════════════════════════
// INVARIANT CHECKS — spec.md §8's quantified invariants, asserted in debug
// ═══════════════════════════════════════════════════════════════════════════
//
// These never run on the hot path in a normal build: CheckInvariants is
// called by the engine only when Engine.debug is set (wired from
// NewEngine(..., WithDebugChecks())) and by the test suite, which enables it
// unconditionally. Finding a violation here means the pipeline itself has a
// bug — this is not a user-facing error path (spec.md §7: "programming
// bugs; the core should assert in debug builds and never silently
// mis-simulate in release").

package tomasulo

import "fmt"

// CheckInvariants walks the engine's state and panics with a description of
// the first violation found. It checks spec.md §8's quantified invariants
// 1 and 2. Invariant 5 is enforced structurally (mutation only happens
// inside commit.go) and is not re-checked here; invariant 3 is not checked
// anywhere, and 4 and 6 are covered as noted at the end of this function.
func (e *Engine) CheckInvariants() {
	// Invariant 1: every non-none reg_tag references a busy ROB entry that
	// will produce that register.
	for r := 1; r < e.cfg.NumRegisters; r++ {
		tag := e.regStatus.TagOf(r)
		if tag.Resolved() {
			continue
		}
		entry := e.rob.At(int(tag))
		if !entry.Busy {
			panic(fmt.Sprintf("invariant violated: reg_tag[%d]=%d but ROB[%d] is not busy", r, tag, tag))
		}
		if entry.Type == ROBReg && entry.Dest != r {
			panic(fmt.Sprintf("invariant violated: reg_tag[%d]=%d but ROB[%d] will write r%d", r, tag, tag, entry.Dest))
		}
	}

	// Invariant 2: for every busy RS, a resolved (NoTag) operand tag means
	// the matching V holds the final value — i.e. there is nothing left to
	// check dynamically beyond "Qj/Qk resolved implies no further
	// resolution is pending", which is exactly what Resolved()/NoTag means
	// by construction. We instead check the converse failure mode: a tag
	// that points at an already-committed/free ROB slot, which would mean
	// an operand can never resolve.
	for i := 0; i < e.rsPool.Len(); i++ {
		rs := e.rsPool.At(i)
		if !rs.Busy {
			continue
		}
		for _, q := range []Tag{rs.Qj, rs.Qk} {
			if q.Resolved() {
				continue
			}
			if !e.rob.At(int(q)).Busy {
				panic(fmt.Sprintf("invariant violated: RS[%d] waits on ROB[%d] which is not busy", i, q))
			}
		}
	}

	// Invariant 4 (CDB arbitration) and 6 (flush completeness) are checked
	// by construction at their single call sites (write.go, flush.go) and
	// by the integration tests; they aren't re-derivable from a state
	// snapshot alone.
}

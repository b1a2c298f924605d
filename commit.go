// ═══════════════════════════════════════════════════════════════════════════
// COMMIT STAGE — in-order retirement from the ROB head
// ═══════════════════════════════════════════════════════════════════════════
//
// spec.md §4.5: the head entry's CommitRemaining (seeded from the opcode's
// commit latency at Issue) only counts down once that entry is both the ROB
// head and Ready; an entry that finished Writeback cycles ago but is still
// waiting behind older instructions pays no extra latency once it becomes
// head. Several entries may retire in the same cycle — chained commits,
// bounded by ROB size since there are only that many entries to drain — as
// long as each one's CommitRemaining was already down to one (its last
// cycle of commit latency) the instant it became head.

package tomasulo

// runCommit retires as many ROB-head entries as are ready this cycle, in
// order, stopping at the first entry that isn't ready, isn't present, or
// still has commit latency left to pay.
func (e *Engine) runCommit() {
	for n := 0; n < e.rob.Size(); n++ {
		if e.rob.Empty() {
			return
		}
		head := e.rob.Head()
		entry := e.rob.At(head)
		if !entry.Busy || !entry.Ready {
			return
		}
		if entry.CommitRemaining > 1 {
			entry.CommitRemaining--
			return
		}

		ins := &e.program[e.progIdxOf[entry.InstrID]]
		ins.Commit = Cycle(e.cycle)

		flushed := e.applyCommitEffect(head, entry)
		e.rob.CommitHead()

		if flushed {
			return
		}
	}
}

// applyCommitEffect performs the architectural effect of retiring entry and
// reports whether it redirected control flow, in which case the caller must
// stop chaining further commits this cycle — the flush it triggers leaves
// nothing else in the ROB to commit anyway.
func (e *Engine) applyCommitEffect(robIdx int, entry *ROBEntry) bool {
	switch entry.Type {
	case ROBReg:
		if entry.Dest > 0 && entry.Dest < e.cfg.NumRegisters {
			e.regs.Set(entry.Dest, entry.Value)
			e.regStatus.ClearIfOwner(entry.Dest, robIdx)
		}
		return false

	case ROBStore:
		e.mem.Store(entry.Dest, entry.Value)
		return false

	case ROBBranch:
		e.branchCount++
		if entry.Value == 0 {
			return false // predicted not-taken, correct: no redirect
		}
		e.mispredictions++
		e.flush(entry.BrTarget)
		return true

	case ROBCall:
		e.regs.Set(1, entry.Value)
		e.regStatus.ClearIfOwner(1, robIdx)
		e.flush(entry.BrTarget)
		return true

	case ROBRet:
		// RET's target is register file[1], read here rather than snapshot
		// at Writeback: in-order commit guarantees whichever CALL produced
		// R1 has already retired by the time RET reaches the head (spec.md
		// §4.5).
		e.flush(e.regs.Get(1))
		return true
	}
	return false
}

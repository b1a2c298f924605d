// ═══════════════════════════════════════════════════════════════════════════
// FLUSH — speculative recovery on a taken branch, CALL, or RET
// ═══════════════════════════════════════════════════════════════════════════
//
// spec.md §4.7: committing a taken BEQ, a CALL, or a RET redirects PC and
// discards every instruction issued after the one retiring — none of them
// should have been fetched under the old control-flow assumption. Recovery
// order: empty the ROB down to the committing head, and for each entry
// released undo any reg_tag bind it still owns, drop any pending CDB
// waiters keyed on its ROB tag, and reset its instruction's timing fields
// so its record reflects "never happened" rather than "issued and then
// vanished"; then release every younger reservation station, and rebuild
// the fetch queue starting at the redirect target.

package tomasulo

// flush performs full speculative recovery and resumes fetch at target.
func (e *Engine) flush(target int) {
	headIdx := e.rob.Head()
	discarded := 0

	e.rob.ReleaseYoungerThanHead(func(idx int, entry ROBEntry) {
		discarded++
		if (entry.Type == ROBReg || entry.Type == ROBCall) && entry.Dest > 0 && entry.Dest < e.cfg.NumRegisters {
			e.regStatus.ClearIfOwner(entry.Dest, idx)
		}
		e.waiterTbl.Forget(idx)
		if progIdx, ok := e.progIdxOf[entry.InstrID]; ok {
			e.program[progIdx].resetTiming()
		}
	})

	for i := 0; i < e.rsPool.Len(); i++ {
		rs := e.rsPool.At(i)
		if !rs.Busy || rs.RobDest == headIdx {
			continue
		}
		fam := FamilyOf(rs.Opcode)
		e.rsPool.Release(fam, i)
	}

	e.pc = target
	if progIdx, ok := e.addrIndex[target]; ok {
		e.fetchQueue = make([]int, 0, len(e.program)-progIdx)
		for i := progIdx; i < len(e.program); i++ {
			e.fetchQueue = append(e.fetchQueue, i)
		}
	} else {
		e.fetchQueue = nil
	}

	if e.log != nil {
		e.log.Info("flush", "target", target, "discarded", discarded)
	}
}

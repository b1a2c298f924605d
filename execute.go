// ═══════════════════════════════════════════════════════════════════════════
// EXECUTE STAGE
// ═══════════════════════════════════════════════════════════════════════════
//
// spec.md §4.3: a busy RS starts executing once every operand it needs is
// resolved (Qj/Qk == NoTag), runs its opcode's exec latency to zero, then
// sits with WriteRemaining pending until Writeback claims the CDB for it.
// STORE only needs its base register (Qj) to start address computation —
// the value register (Qk) may still be in flight; spec.md §9 calls this out
// explicitly as the one family with a weaker start condition than
// "all operands ready".

package tomasulo

// runExecute advances every busy, not-yet-finished RS by one cycle.
func (e *Engine) runExecute() {
	for i := 0; i < e.rsPool.Len(); i++ {
		rs := e.rsPool.At(i)
		if !rs.Busy {
			continue
		}
		if rs.ExecStarted && rs.ExecRemaining == 0 {
			continue // finished executing, waiting on Writeback to claim the CDB
		}
		if !rs.ExecStarted {
			if !e.readyToStart(rs) {
				continue
			}
			rs.ExecStarted = true
			ins := &e.program[e.progIdxOf[rs.InstrID]]
			ins.ExecStart = Cycle(e.cycle)
		}
		if rs.ExecRemaining > 0 {
			rs.ExecRemaining--
			if rs.ExecRemaining == 0 {
				ins := &e.program[e.progIdxOf[rs.InstrID]]
				ins.ExecEnd = Cycle(e.cycle)
				if rs.Opcode == OpSTORE {
					rs.WriteRemaining = 0
				} else {
					rs.WriteRemaining = 1
				}
			}
		}
	}
}

// readyToStart reports whether rs may begin execution this cycle. Every
// family but STORE requires both operands resolved; STORE only requires its
// base-register operand (Qj), matching spec.md §4.3's STORE exception.
func (e *Engine) readyToStart(rs *RS) bool {
	if rs.Opcode == OpSTORE {
		return rs.Qj.Resolved()
	}
	return rs.Qj.Resolved() && rs.Qk.Resolved()
}

// ═══════════════════════════════════════════════════════════════════════════
// WRITEBACK STAGE — single common data bus, oldest-instruction arbitration
// ═══════════════════════════════════════════════════════════════════════════
//
// spec.md §4.4: exactly one non-STORE result may claim the CDB per cycle.
// When more than one RS finishes execution in the same cycle, the one
// holding the oldest instruction (lowest InstrID, since instructions are
// numbered in program order) wins; the rest simply wait one more cycle and
// re-arbitrate. STORE never touches the CDB — it has nothing to broadcast,
// only an address/value pair the ROB holds until Commit — so it finalizes
// independently of the single-writer rule, gated only on its data operand
// (Qk) having resolved by the time its address computation (Qj) finishes.

package tomasulo

// runWrite finalizes at most one non-STORE RS this cycle via the CDB, plus
// any STOREs whose data operand has resolved. A finished RS whose
// write-delay counter is still positive ticks it down and yields the CDB
// this cycle rather than competing (spec.md §4.4) — the tick must use each
// RS's counter as it stood at the start of this cycle, so the single pass
// below decides candidacy before decrementing.
func (e *Engine) runWrite() {
	for i := 0; i < e.rsPool.Len(); i++ {
		rs := e.rsPool.At(i)
		if !rs.Busy || rs.Opcode != OpSTORE {
			continue
		}
		if rs.ExecStarted && rs.ExecRemaining == 0 && rs.Qk.Resolved() {
			e.finalizeStore(i, rs)
		}
	}

	winner := -1
	for i := 0; i < e.rsPool.Len(); i++ {
		rs := e.rsPool.At(i)
		if !rs.Busy || rs.Opcode == OpSTORE {
			continue
		}
		if !rs.ExecStarted || rs.ExecRemaining != 0 {
			continue
		}
		if rs.WriteRemaining > 0 {
			rs.WriteRemaining--
			continue
		}
		if winner == -1 || rs.InstrID < e.rsPool.At(winner).InstrID {
			winner = i
		}
	}
	if winner >= 0 {
		e.finalizeCDB(winner)
	}
}

// finalizeStore computes the effective address and snapshots the data
// operand; STORE never goes through the CDB so there is nothing to
// broadcast, and nobody ever renames against a STORE's ROB tag.
func (e *Engine) finalizeStore(rsIdx int, rs *RS) {
	entry := e.rob.At(rs.RobDest)
	entry.Dest = wrap16(rs.Vj + rs.A)
	entry.Value = rs.Vk
	entry.Ready = true

	ins := &e.program[e.progIdxOf[rs.InstrID]]
	ins.Write = Cycle(e.cycle)

	fam := FamilyOf(rs.Opcode)
	e.rsPool.Release(fam, rsIdx)
}

// finalizeCDB computes the result for the RS that won this cycle's CDB
// arbitration, stores it in its ROB entry, wakes every RS snooping this tag,
// and frees the reservation station.
func (e *Engine) finalizeCDB(rsIdx int) {
	rs := e.rsPool.At(rsIdx)
	entry := e.rob.At(rs.RobDest)

	var result int
	switch rs.Opcode {
	case OpLOAD:
		addr := wrap16(rs.Vj + rs.A)
		result = e.mem.Load(addr)
	case OpADD:
		result = wrap16(rs.Vj + rs.Vk)
	case OpSUB:
		result = wrap16(rs.Vj - rs.Vk)
	case OpNAND:
		result = wrap16(^(rs.Vj & rs.Vk))
	case OpMUL:
		result = wrap16(rs.Vj * rs.Vk)
	case OpBEQ:
		if rs.Vj == rs.Vk {
			result = 1
		} else {
			result = 0
		}
	case OpCALL:
		// pc_on_issue+1 is fully determined at Issue, with no operand
		// dependency — populating it here (rather than waiting for Commit,
		// spec.md §4.4's literal wording) is what lets the rename rule
		// forward R1's value to a younger reader before CALL retires.
		result = entry.PCOnIssue + 1
	case OpRET:
		// No computed value: RET never produces a renamed register, so
		// nothing ever forwards off its tag.
	}

	entry.Value = result
	entry.Ready = true

	tag := rs.RobDest
	src1Waiters, src2Waiters := e.waiterTbl.Broadcast(tag)
	for _, w := range src1Waiters {
		dep := e.rsPool.At(w)
		if dep.Busy && dep.Qj == Tag(tag) {
			dep.Vj = result
			dep.Qj = NoTag
		}
	}
	for _, w := range src2Waiters {
		dep := e.rsPool.At(w)
		if dep.Busy && dep.Qk == Tag(tag) {
			dep.Vk = result
			dep.Qk = NoTag
		}
	}

	ins := &e.program[e.progIdxOf[rs.InstrID]]
	ins.Write = Cycle(e.cycle)

	fam := FamilyOf(rs.Opcode)
	e.rsPool.Release(fam, rsIdx)
}

// ═══════════════════════════════════════════════════════════════════════════
// ISSUE STAGE
// ═══════════════════════════════════════════════════════════════════════════
//
// Preconditions (spec.md §4.2): the fetch queue's head instruction address
// equals PC, the ROB has a free slot, and the instruction's RS family has a
// free slot. Any failure stalls with no partial effect — ROB allocation is
// rolled back if the RS pool turns out to be full, so a stall never leaks a
// half-allocated ROB entry.

package tomasulo

// tryIssue attempts to issue the fetch queue's head instruction. Returns
// false if any precondition fails (a structural stall, not an error).
func (e *Engine) tryIssue() bool {
	if len(e.fetchQueue) == 0 {
		return false
	}
	progIdx := e.fetchQueue[0]
	ins := &e.program[progIdx]
	if ins.Addr != e.pc {
		return false
	}

	robIdx, ok := e.rob.Alloc()
	if !ok {
		return false
	}

	fam := FamilyOf(ins.Opcode)
	rsIdx, ok := e.rsPool.FreeSlot(fam)
	if !ok {
		// Roll back the ROB allocation: issue makes no partial progress.
		e.rob.UndoAlloc()
		return false
	}
	e.rsPool.Alloc(fam, rsIdx)

	rs := e.rsPool.At(rsIdx)
	rs.Busy = true
	rs.Opcode = ins.Opcode
	rs.InstrID = ins.ID
	rs.RobDest = robIdx
	rs.ExecStarted = false
	rs.ExecRemaining = e.cfg.Latency[ins.Opcode].Exec
	rs.Qj, rs.Qk = NoTag, NoTag
	rs.Vj, rs.Vk, rs.A = 0, 0, 0

	entry := e.rob.At(robIdx)
	entry.Busy = true
	entry.InstrID = ins.ID
	entry.PCOnIssue = ins.Addr
	entry.CommitRemaining = e.cfg.Latency[ins.Opcode].Commit

	e.decodeOperands(ins, rs, entry, rsIdx, robIdx)

	if (entry.Type == ROBReg || entry.Type == ROBCall) && entry.Dest > 0 && entry.Dest < e.cfg.NumRegisters {
		e.regStatus.Bind(entry.Dest, robIdx)
	}

	ins.Issue = Cycle(e.cycle)
	ins.robIdx = robIdx

	e.fetchQueue = e.fetchQueue[1:]
	e.pc++ // speculative sequential advance; BEQ predicts not-taken, CALL/RET resolve at commit
	return true
}

// decodeOperands fills the RS and ROB entry per the opcode contract of
// spec.md §4.1, binding each source to either its resolved value or the ROB
// tag that will eventually produce it.
func (e *Engine) decodeOperands(ins *Instruction, rs *RS, entry *ROBEntry, rsIdx, robIdx int) {
	switch ins.Opcode {
	case OpLOAD:
		entry.Type = ROBReg
		entry.Dest = ins.Dest
		e.bindSrc1(ins.Src1, rs, rsIdx)
		rs.A = ins.Src2Imm

	case OpSTORE:
		entry.Type = ROBStore
		e.bindSrc1(ins.Src1, rs, rsIdx)
		rs.A = ins.Src2Imm
		e.bindSrc2(ins.Dest, rs, rsIdx) // rs2 (data to store) travels in the Dest slot

	case OpBEQ:
		entry.Type = ROBBranch
		e.bindSrc1(ins.Dest, rs, rsIdx) // rs1
		e.bindSrc2(ins.Src1, rs, rsIdx) // rs2
		entry.BrTarget = ins.Addr + 1 + ins.Src2Imm

	case OpCALL:
		entry.Type = ROBCall
		entry.Dest = 1
		entry.BrTarget = ins.Src2Imm
		e.regStatus.Bind(1, robIdx)

	case OpRET:
		// RET reads R1 at Commit, once every older instruction (including
		// whichever CALL produced R1) has already retired in order — it
		// needs no renamed operand, and its CDB write carries no value.
		entry.Type = ROBRet

	default: // ADD, SUB, NAND, MUL
		entry.Type = ROBReg
		entry.Dest = ins.Dest
		e.bindSrc1(ins.Src1, rs, rsIdx)
		e.bindSrc2(ins.Src2Imm, rs, rsIdx)
	}
}

// bindSrc1 applies the rename rule of spec.md §4.2 to register/slot r,
// writing into Vj/Qj.
func (e *Engine) bindSrc1(r int, rs *RS, rsIdx int) {
	val, tag := e.rename(r)
	if tag.Resolved() {
		rs.Vj = val
		rs.Qj = NoTag
	} else {
		rs.Qj = tag
		e.waiterTbl.WaitSrc1(int(tag), rsIdx)
	}
}

// bindSrc2 applies the rename rule to register/slot r, writing into Vk/Qk.
func (e *Engine) bindSrc2(r int, rs *RS, rsIdx int) {
	val, tag := e.rename(r)
	if tag.Resolved() {
		rs.Vk = val
		rs.Qk = NoTag
	} else {
		rs.Qk = tag
		e.waiterTbl.WaitSrc2(int(tag), rsIdx)
	}
}

// rename implements the operand-binding rule of spec.md §4.2 for a single
// source register.
func (e *Engine) rename(r int) (value int, tag Tag) {
	if r == 0 {
		return 0, NoTag
	}
	t := e.regStatus.TagOf(r)
	if t.Resolved() {
		return e.regs.Get(r), NoTag
	}
	entry := e.rob.At(int(t))
	if entry.Ready {
		return entry.Value, NoTag
	}
	return 0, t
}

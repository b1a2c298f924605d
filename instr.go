// ═══════════════════════════════════════════════════════════════════════════
// INSTRUCTION SET — fixed opcode encoding consumed by the pipeline
// ═══════════════════════════════════════════════════════════════════════════
//
// The core never decodes assembly text; it consumes already-decoded
// Instruction records (see Instruction below). Operand slot meaning is
// opcode-dependent and documented per opcode.

package tomasulo

// Opcode is the fixed numeric encoding of the decoded instruction stream.
type Opcode int

const (
	OpLOAD  Opcode = 1
	OpSTORE Opcode = 2
	OpBEQ   Opcode = 3
	OpADD   Opcode = 4
	OpSUB   Opcode = 5
	OpNAND  Opcode = 6
	OpMUL   Opcode = 7
	OpCALL  Opcode = 8
	OpRET   Opcode = 9
)

// Family groups opcodes into the functional-unit pool that serves them.
// ADD and SUB share one family; every other opcode gets its own.
type Family int

const (
	FamilyLOAD Family = iota
	FamilySTORE
	FamilyBR
	FamilyADDSUB
	FamilyNAND
	FamilyMUL
	FamilyCALL
	FamilyRET
	numFamilies
)

func (f Family) String() string {
	switch f {
	case FamilyLOAD:
		return "LOAD"
	case FamilySTORE:
		return "STORE"
	case FamilyBR:
		return "BR"
	case FamilyADDSUB:
		return "ADD/SUB"
	case FamilyNAND:
		return "NAND"
	case FamilyMUL:
		return "MUL"
	case FamilyCALL:
		return "CALL"
	case FamilyRET:
		return "RET"
	default:
		return "UNKNOWN"
	}
}

// FamilyOf reports the RS family that services an opcode, or -1 for an
// opcode outside 1..9 (the loader uses that to reject unknown opcodes).
// The engine itself does not check program opcodes.
func FamilyOf(op Opcode) Family {
	switch op {
	case OpLOAD:
		return FamilyLOAD
	case OpSTORE:
		return FamilySTORE
	case OpBEQ:
		return FamilyBR
	case OpADD, OpSUB:
		return FamilyADDSUB
	case OpNAND:
		return FamilyNAND
	case OpMUL:
		return FamilyMUL
	case OpCALL:
		return FamilyCALL
	case OpRET:
		return FamilyRET
	default:
		return -1
	}
}

// Mnemonic returns the opcode's textual name, used by the reporter and in
// error messages. Unknown opcodes render as "OP?".
func (op Opcode) Mnemonic() string {
	switch op {
	case OpLOAD:
		return "LOAD"
	case OpSTORE:
		return "STORE"
	case OpBEQ:
		return "BEQ"
	case OpADD:
		return "ADD"
	case OpSUB:
		return "SUB"
	case OpNAND:
		return "NAND"
	case OpMUL:
		return "MUL"
	case OpCALL:
		return "CALL"
	case OpRET:
		return "RET"
	default:
		return "OP?"
	}
}

// unset marks a timing annotation or tag that has not been assigned yet.
// Used in place of a magic -1 sprinkled through call sites: every read goes
// through IsSet so the sentinel lives in exactly one place.
const unset = -1

// Cycle is a 1-based cycle-number timing annotation, or unset.
type Cycle int

// IsSet reports whether the stage recorded a cycle for this annotation.
func (c Cycle) IsSet() bool { return c != unset }

// Tag identifies a ROB slot producing a register value, or "none" meaning
// the value already lives in the register file / RS value slot.
type Tag int

// NoTag is the "value already resolved" sentinel for Qj/Qk and reg_tag.
const NoTag Tag = unset

// Resolved reports whether the tag is NoTag (operand value already final).
func (t Tag) Resolved() bool { return t == NoTag }

// Instruction is a decoded dynamic instruction plus the timing annotations
// the pipeline stamps onto it as it moves through Issue, Execute, Write and
// Commit. All fields after Opcode are opcode-dependent; see FamilyOf and the
// per-opcode comments in issue.go for the exact slot interpretation.
type Instruction struct {
	ID      int    // position in program order (0-based)
	Addr    int    // instruction address (StartAddr + ID)
	Opcode  Opcode
	Dest    int // dest register (LOAD/ALU/CALL) or rs2 data-to-store slot (STORE) or rs1 (BEQ)
	Src1    int // rs1 (base for LOAD/STORE, rs1 for ALU, rs2 for BEQ)
	Src2Imm int // rs2 (ALU), immediate offset (LOAD/STORE/BEQ), absolute target (CALL)

	Issue     Cycle
	ExecStart Cycle
	ExecEnd   Cycle
	Write     Cycle
	Commit    Cycle

	robIdx int // ROB slot while in flight, unset otherwise
}

// newInstruction returns an Instruction with every timing field unset, as
// required at load time and after a speculative flush (spec.md §4.7 step 3).
func newInstruction(id, addr int, op Opcode, a, b, c int) Instruction {
	return Instruction{
		ID: id, Addr: addr, Opcode: op,
		Dest: a, Src1: b, Src2Imm: c,
		Issue: unset, ExecStart: unset, ExecEnd: unset, Write: unset, Commit: unset,
		robIdx: unset,
	}
}

// NewInstruction is the loader-facing constructor for a decoded instruction,
// every timing field unset until Issue stamps it.
func NewInstruction(id, addr int, op Opcode, a, b, c int) Instruction {
	return newInstruction(id, addr, op, a, b, c)
}

// resetTiming clears every timing annotation and the ROB binding, as
// performed on every instruction a flush discards (spec.md §4.7 step 3).
func (in *Instruction) resetTiming() {
	in.Issue, in.ExecStart, in.ExecEnd, in.Write, in.Commit = unset, unset, unset, unset, unset
	in.robIdx = unset
}

// Committed reports whether the instruction has reached Commit.
func (in *Instruction) Committed() bool { return in.Commit.IsSet() }

// ═══════════════════════════════════════════════════════════════════════════
// END-TO-END SCENARIOS — spec.md §8's six concrete scenarios (S1-S6)
// ═══════════════════════════════════════════════════════════════════════════

package tomasulo

import "testing"

type instrSpec struct {
	Addr    int
	Op      Opcode
	A, B, C int
}

func buildProgram(specs []instrSpec) []Instruction {
	out := make([]Instruction, len(specs))
	for i, s := range specs {
		out[i] = newInstruction(i, s.Addr, s.Op, s.A, s.B, s.C)
	}
	return out
}

func mustRun(t *testing.T, program []Instruction, cfg Config) Result {
	t.Helper()
	e, err := NewEngine(program, cfg, WithDebugChecks())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	result, err := e.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

// S1 — ALU pipelining: two ADDs, the second reading R1 from the first.
func TestS1_ALUPipelining(t *testing.T) {
	program := buildProgram([]instrSpec{
		{Addr: 0, Op: OpADD, A: 1, B: 0, C: 0}, // R1 = R0 + R0 = 0
		{Addr: 1, Op: OpADD, A: 2, B: 1, C: 1}, // R2 = R1 + R1 = 0
	})
	result := mustRun(t, program, DefaultConfig())

	for i, ins := range result.Instructions {
		if !ins.Committed() {
			t.Errorf("instruction %d never committed", i)
		}
	}
	if result.Registers[1] != 0 || result.Registers[2] != 0 {
		t.Errorf("R1=%d R2=%d, want 0 0", result.Registers[1], result.Registers[2])
	}
	if result.BranchCount != 0 {
		t.Errorf("branch_count = %d, want 0", result.BranchCount)
	}
}

// S2 — RAW forwarding through the CDB: instruction 3's Qj resolves when
// instruction 2 writes back, not from the register file.
func TestS2_RAWForwarding(t *testing.T) {
	program := buildProgram([]instrSpec{
		{Addr: 0, Op: OpADD, A: 1, B: 0, C: 0}, // R1 = 0
		{Addr: 1, Op: OpMUL, A: 2, B: 1, C: 1}, // R2 = R1*R1 = 0
		{Addr: 2, Op: OpADD, A: 3, B: 2, C: 2}, // R3 = R2+R2 = 0
	})
	result := mustRun(t, program, DefaultConfig())

	if result.Registers[1] != 0 || result.Registers[2] != 0 || result.Registers[3] != 0 {
		t.Errorf("R1=%d R2=%d R3=%d, want 0 0 0", result.Registers[1], result.Registers[2], result.Registers[3])
	}
	if result.IPC >= 1.0 {
		t.Errorf("IPC = %f, want < 1 (MUL's 12-cycle latency must dominate)", result.IPC)
	}
}

// S3 — LOAD/STORE ordering: a loaded value flows through to a stored
// address, and STORE's 4-cycle commit latency is honored.
func TestS3_LoadStoreOrdering(t *testing.T) {
	program := buildProgram([]instrSpec{
		{Addr: 0, Op: OpLOAD, A: 1, B: 0, C: 10},  // R1 = M[R0+10]
		{Addr: 1, Op: OpSTORE, A: 1, B: 0, C: 11}, // M[R0+11] = R1
	})
	cfg := DefaultConfig()
	e, err := NewEngine(program, cfg, WithDebugChecks())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.SeedMemory(map[int]int{10: 7})
	result, err := e.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Registers[1] != 7 {
		t.Errorf("R1 = %d, want 7", result.Registers[1])
	}
	if result.Memory[10] != 7 {
		t.Errorf("M[10] = %d, want 7", result.Memory[10])
	}
	if result.Memory[11] != 7 {
		t.Errorf("M[11] = %d, want 7", result.Memory[11])
	}

	store := result.Instructions[1]
	if !store.ExecEnd.IsSet() || !store.Write.IsSet() || !store.Commit.IsSet() {
		t.Fatalf("store instruction missing timing: %+v", store)
	}
	// STORE's address computation (ExecEnd) only waits on the base register,
	// so it finishes long before Write, which also waits on the LOAD-produced
	// data operand — ExecEnd to Commit therefore measures that data wait plus
	// the commit latency, not the commit latency alone. Measure the commit
	// latency itself as Commit - Write: STORE becomes ROB head no later than
	// Write, so it spends exactly its configured commit latency as head,
	// committing one cycle before that count would reach zero (the `>1`
	// guard in runCommit).
	wantDelay := cfg.Latency[OpSTORE].Commit - 1
	if got := int(store.Commit) - int(store.Write); got != wantDelay {
		t.Errorf("store commit - write = %d cycles, want %d (commit latency %d)", got, wantDelay, cfg.Latency[OpSTORE].Commit)
	}
	if store.ExecEnd >= store.Write {
		t.Errorf("store exec_end (%d) should precede write (%d): address calc doesn't wait on the data operand", store.ExecEnd, store.Write)
	}
}

// S4 — taken branch flush: the speculatively issued instruction after the
// branch is discarded and never commits its would-be effect.
func TestS4_TakenBranchFlush(t *testing.T) {
	program := buildProgram([]instrSpec{
		{Addr: 0, Op: OpADD, A: 1, B: 0, C: 0}, // R1 = 0
		{Addr: 1, Op: OpBEQ, A: 1, B: 0, C: 1}, // BEQ R1,R0,+1 -> taken, target = 1+1+1 = 3
		{Addr: 2, Op: OpADD, A: 2, B: 0, C: 99}, // speculative: R2 = R0+99 = 99 (must be flushed)
		{Addr: 3, Op: OpADD, A: 3, B: 0, C: 0},  // branch target: R3 = R0+R0 = 0
	})
	result := mustRun(t, program, DefaultConfig())

	if result.BranchCount != 1 {
		t.Errorf("branch_count = %d, want 1", result.BranchCount)
	}
	if result.Mispredictions != 1 {
		t.Errorf("mispredictions = %d, want 1", result.Mispredictions)
	}
	if result.Registers[1] != 0 {
		t.Errorf("R1 = %d, want 0", result.Registers[1])
	}
	if result.Registers[2] != 0 {
		t.Errorf("R2 = %d, want 0 (flushed instruction must never commit)", result.Registers[2])
	}
	if result.Registers[3] != 0 {
		t.Errorf("R3 = %d, want 0", result.Registers[3])
	}
	if result.Instructions[2].Committed() {
		t.Errorf("flushed instruction at address 2 should never have committed")
	}
}

// S5 — CALL/RET round trip.
func TestS5_CallRetRoundTrip(t *testing.T) {
	program := buildProgram([]instrSpec{
		{Addr: 0, Op: OpCALL, A: 0, B: 0, C: 5}, // CALL 5
		{Addr: 5, Op: OpRET, A: 0, B: 0, C: 0},  // RET
	})
	result := mustRun(t, program, DefaultConfig())

	if result.Registers[1] != 1 {
		t.Errorf("R1 (return address) = %d, want 1", result.Registers[1])
	}
	if result.BranchCount != 0 {
		t.Errorf("branch_count = %d, want 0 (BEQ-only counter)", result.BranchCount)
	}
	if result.Mispredictions != 0 {
		t.Errorf("mispredictions = %d, want 0", result.Mispredictions)
	}
	for i, ins := range result.Instructions {
		if !ins.Committed() {
			t.Errorf("instruction %d never committed", i)
		}
	}
}

// S6 — ROB-full stall: with ROB size 8, a ninth independent instruction
// cannot issue until at least one cycle after the eighth.
func TestS6_ROBFullStall(t *testing.T) {
	specs := make([]instrSpec, 9)
	for i := range specs {
		dest := (i % 7) + 1
		specs[i] = instrSpec{Addr: i, Op: OpADD, A: dest, B: 0, C: 0}
	}
	program := buildProgram(specs)

	cfg := DefaultConfig()
	cfg.RSCounts[FamilyADDSUB] = 9       // RS must not be the bottleneck here
	cfg.Latency[OpADD] = Latency{Exec: 1, Commit: 1000} // nothing commits in the test window

	e, err := NewEngine(program, cfg, WithDebugChecks())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	for i := 0; i < 10; i++ {
		e.Cycle()
	}
	result := e.Result()

	eighth, ninth := result.Instructions[7], result.Instructions[8]
	if !eighth.Issue.IsSet() || int(eighth.Issue) != 8 {
		t.Fatalf("8th instruction issue cycle = %v, want 8", eighth.Issue)
	}
	if ninth.Issue.IsSet() {
		t.Errorf("9th instruction issued at cycle %v while ROB was still full", ninth.Issue)
	}
}

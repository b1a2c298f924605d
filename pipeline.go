// ═══════════════════════════════════════════════════════════════════════════
// ENGINE — ties the five pipeline stages to one piece of program state
// ═══════════════════════════════════════════════════════════════════════════
//
// spec.md §4: every cycle runs Execute, then Write, then Commit, then Issue,
// in that fixed order — a result produced by Execute this cycle can be
// claimed by Write this same cycle, a value written back this cycle can
// retire at Commit this same cycle, and a ROB slot freed by Commit this
// cycle can be reused by Issue this same cycle. Running the stages in the
// opposite order would starve every one of these same-cycle forwarding
// paths.

package tomasulo

import (
	"github.com/Doha-Deia/TomasuloAlgorithm-Simulator/internal/telemetry"
	"github.com/Doha-Deia/TomasuloAlgorithm-Simulator/internal/waiters"
)

// Engine holds one simulation's full architectural and microarchitectural
// state: the static program, the in-order front end (PC/fetch queue), and
// the Tomasulo back end (ROB, reservation stations, register file and
// rename table, memory, and the CDB wakeup table).
type Engine struct {
	cfg     Config
	program []Instruction

	progIdxOf map[int]int // InstrID -> index into program
	addrIndex map[int]int // instruction address -> index into program

	pc         int
	fetchQueue []int // pending program indices, in fetch order

	rob       *ROB
	rsPool    *RSPool
	regs      *RegisterFile
	regStatus *RegisterStatus
	mem       *Memory
	waiterTbl *waiters.Table

	cycle          int
	branchCount    int
	mispredictions int

	debug bool
	log   *telemetry.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithDebugChecks enables CheckInvariants after every cycle — expensive, and
// meant for tests and development builds, not production runs (spec.md §8).
func WithDebugChecks() Option {
	return func(e *Engine) { e.debug = true }
}

// WithLogger attaches a telemetry.Logger; the engine emits one Debug line
// per cycle and Info lines on flush when one is set. Runs silently without
// one (the zero value is a no-op logger via nil-check at each call site).
func WithLogger(l *telemetry.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine builds a fresh Engine for program under cfg. The program must
// already be sorted by ascending address (spec.md §6 loader contract); cfg
// is validated before anything else is built.
func NewEngine(program []Instruction, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, wrapInputError("NewEngine", err)
	}

	e := &Engine{
		cfg:       cfg,
		program:   program,
		progIdxOf: make(map[int]int, len(program)),
		addrIndex: make(map[int]int, len(program)),
		rob:       NewROB(cfg.ROBSize),
		rsPool:    NewRSPool(cfg.RSCounts),
		regs:      NewRegisterFile(cfg.NumRegisters),
		regStatus: NewRegisterStatus(cfg.NumRegisters),
		mem:       NewMemory(cfg.MemWords),
		waiterTbl: waiters.New(cfg.ROBSize, cfg.totalRS()),
	}
	for i, ins := range program {
		e.progIdxOf[ins.ID] = i
		e.addrIndex[ins.Addr] = i
	}
	e.fetchQueue = make([]int, len(program))
	for i := range program {
		e.fetchQueue[i] = i
	}
	if len(program) > 0 {
		e.pc = program[0].Addr
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SeedMemory preloads initial memory contents, as parsed from an optional
// memory file (spec.md §6). Must be called before the first Cycle.
func (e *Engine) SeedMemory(seed map[int]int) {
	for addr, val := range seed {
		e.mem.Store(addr, val)
	}
}

// Done reports whether the simulation has nothing left to do: no in-flight
// instruction and nothing left to fetch.
func (e *Engine) Done() bool {
	return e.rob.Empty() && len(e.fetchQueue) == 0
}

// Cycle advances the simulation by exactly one clock cycle, running
// Execute, Write, Commit, and Issue in that fixed order (spec.md §4).
func (e *Engine) Cycle() {
	e.cycle++
	e.runExecute()
	e.runWrite()
	e.runCommit()
	issued := e.tryIssue()
	if e.log != nil {
		e.log.Debug("cycle", "n", e.cycle, "issued", issued, "rob_inflight", e.rob.Count())
	}
	if e.debug {
		e.CheckInvariants()
	}
}

// Run drives the simulation to completion or to cfg.MaxCycles, whichever
// comes first. Hitting MaxCycles without draining is a runaway — spec.md §7
// treats that as a reportable error, not a panic, since a stalled program is
// a property of the input, not a bug in the simulator.
func (e *Engine) Run() (Result, error) {
	for !e.Done() {
		if e.cycle >= e.cfg.MaxCycles {
			partial := e.Result()
			return partial, runawayError("Run", e.cfg.MaxCycles, partial)
		}
		e.Cycle()
	}
	result := e.Result()
	if e.log != nil {
		e.log.Info("run complete", "cycles", result.Cycles, "ipc", result.IPC, "mispredictions", result.Mispredictions)
	}
	return result, nil
}

// Result is a point-in-time snapshot of everything an observer of the
// simulation might want to report.
type Result struct {
	Cycles         int
	CommittedCount int
	IPC            float64
	BranchCount    int
	Mispredictions int
	Registers      []int
	Memory         []uint16
	Instructions   []Instruction
}

// Result snapshots the engine's current state.
func (e *Engine) Result() Result {
	instrs := make([]Instruction, len(e.program))
	copy(instrs, e.program)

	committed := 0
	for i := range instrs {
		if instrs[i].Committed() {
			committed++
		}
	}
	var ipc float64
	if e.cycle > 0 {
		ipc = float64(committed) / float64(e.cycle)
	}

	return Result{
		Cycles:         e.cycle,
		CommittedCount: committed,
		IPC:            ipc,
		BranchCount:    e.branchCount,
		Mispredictions: e.mispredictions,
		Registers:      e.regs.Snapshot(),
		Memory:         e.mem.Snapshot(),
		Instructions:   instrs,
	}
}

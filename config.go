// ═══════════════════════════════════════════════════════════════════════════
// CONFIGURATION — structural sizes and latencies, read once at construction
// ═══════════════════════════════════════════════════════════════════════════
//
// Every family size and opcode latency the engine consults comes from a
// Config value built at startup. Nothing downstream hard-codes "2 LOAD
// reservation stations" or "MUL takes 12 cycles" — that table lives here
// and only here, per spec.md §4.6's requirement that these be configuration
// constants the core reads at initialization.

package tomasulo

import "fmt"

// Latency bundles the execute and commit latency of one opcode family.
type Latency struct {
	Exec   int
	Commit int
}

// Config is the complete set of structural constants the engine needs.
type Config struct {
	RSCounts map[Family]int
	Latency  map[Opcode]Latency

	ROBSize      int
	NumRegisters int
	MemWords     int
	MaxCycles    int
}

// DefaultConfig returns the table documented in spec.md §4.6: LOAD(2)/6/1,
// STORE(1)/1/4, BR(2)/1/1, ADD-SUB(4)/2/1, NAND(2)/1/1, MUL(1)/12/1,
// CALL(1)/1/1, RET(1)/1/1, an 8-entry ROB, 8 registers, a 64K word memory
// and a 1,000,000-cycle runaway guard (matching the reference simulator's
// DEFAULT_MAX_CYCLES).
func DefaultConfig() Config {
	return Config{
		RSCounts: map[Family]int{
			FamilyLOAD:   2,
			FamilySTORE:  1,
			FamilyBR:     2,
			FamilyADDSUB: 4,
			FamilyNAND:   2,
			FamilyMUL:    1,
			FamilyCALL:   1,
			FamilyRET:    1,
		},
		Latency: map[Opcode]Latency{
			OpLOAD:  {Exec: 6, Commit: 1},
			OpSTORE: {Exec: 1, Commit: 4},
			OpBEQ:   {Exec: 1, Commit: 1},
			OpADD:   {Exec: 2, Commit: 1},
			OpSUB:   {Exec: 2, Commit: 1},
			OpNAND:  {Exec: 1, Commit: 1},
			OpMUL:   {Exec: 12, Commit: 1},
			OpCALL:  {Exec: 1, Commit: 1},
			OpRET:   {Exec: 1, Commit: 1},
		},
		ROBSize:      8,
		NumRegisters: 8,
		MemWords:     1 << 16,
		MaxCycles:    1_000_000,
	}
}

// Validate rejects a structurally broken configuration before the engine
// starts — an input error (spec.md §7), never a panic.
func (c Config) Validate() error {
	if c.ROBSize <= 0 {
		return fmt.Errorf("rob size must be positive, got %d", c.ROBSize)
	}
	if c.NumRegisters <= 0 {
		return fmt.Errorf("register count must be positive, got %d", c.NumRegisters)
	}
	if c.MemWords <= 0 {
		return fmt.Errorf("memory word count must be positive, got %d", c.MemWords)
	}
	if c.MaxCycles <= 0 {
		return fmt.Errorf("max cycles must be positive, got %d", c.MaxCycles)
	}
	for f := Family(0); f < numFamilies; f++ {
		if n, ok := c.RSCounts[f]; !ok || n <= 0 {
			return fmt.Errorf("reservation station family %s must have a positive size, got %d", f, n)
		}
	}
	for op := OpLOAD; op <= OpRET; op++ {
		lat, ok := c.Latency[op]
		if !ok {
			return fmt.Errorf("opcode %s has no configured latency", op.Mnemonic())
		}
		if lat.Exec <= 0 {
			return fmt.Errorf("opcode %s execute latency must be positive, got %d", op.Mnemonic(), lat.Exec)
		}
		if lat.Commit <= 0 {
			return fmt.Errorf("opcode %s commit latency must be positive, got %d", op.Mnemonic(), lat.Commit)
		}
	}
	return nil
}

// totalRS returns the sum of every family's RS count — the size of the flat
// reservation-station array the engine allocates.
func (c Config) totalRS() int {
	total := 0
	for _, n := range c.RSCounts {
		total += n
	}
	return total
}

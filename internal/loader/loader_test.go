package loader

import (
	"strings"
	"testing"
)

func TestParseProgramAssignsSequentialAddresses(t *testing.T) {
	text := `
# starting address
100
// R1 = R0 + R0
4 1 0 0
4 2 1 1
`
	prog, err := ParseProgram(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if prog.StartAddr != 100 {
		t.Fatalf("StartAddr = %d, want 100", prog.StartAddr)
	}
	if len(prog.Instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(prog.Instructions))
	}
	if prog.Instructions[0].Addr != 100 || prog.Instructions[1].Addr != 101 {
		t.Errorf("addresses = %d, %d, want 100, 101", prog.Instructions[0].Addr, prog.Instructions[1].Addr)
	}
}

func TestParseProgramRejectsUnknownOpcode(t *testing.T) {
	_, err := ParseProgram(strings.NewReader("0\n42 0 0 0\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown opcode")
	}
}

func TestParseProgramRejectsMalformedLine(t *testing.T) {
	_, err := ParseProgram(strings.NewReader("0\n4 1 0\n"))
	if err == nil {
		t.Fatal("expected an error for a line with the wrong field count")
	}
}

func TestParseProgramRejectsMissingStartAddress(t *testing.T) {
	_, err := ParseProgram(strings.NewReader("# just a comment\n"))
	if err == nil {
		t.Fatal("expected an error for a file with no starting address")
	}
}

func TestParseMemoryMasksTo16Bits(t *testing.T) {
	seed, err := ParseMemory(strings.NewReader("10 7\n11 70000\n"))
	if err != nil {
		t.Fatalf("ParseMemory: %v", err)
	}
	if seed[10] != 7 {
		t.Errorf("seed[10] = %d, want 7", seed[10])
	}
	if want := 70000 & 0xFFFF; seed[11] != want {
		t.Errorf("seed[11] = %d, want %d", seed[11], want)
	}
}

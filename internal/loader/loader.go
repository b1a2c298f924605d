// ═══════════════════════════════════════════════════════════════════════════
// LOADER — parses the program and memory text formats of spec.md §6
// ═══════════════════════════════════════════════════════════════════════════
//
// Neither format carries a magic header or version tag: the program file is
// a starting address followed by `opcode a b c` lines, the memory file is
// `address value` pairs. Both tolerate `#`/`//` comments and blank lines.
// This package has no dependency on the engine's internal types beyond the
// public Opcode/Instruction constructors it re-exports through — it only
// ever hands the engine a plain []tomasulo.Instruction and map[int]int seed.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tomasulo "github.com/Doha-Deia/TomasuloAlgorithm-Simulator"
)

// Program is the result of parsing a program file: the decoded instruction
// stream plus the starting address it was assigned from.
type Program struct {
	StartAddr    int
	Instructions []tomasulo.Instruction
}

// LoadProgram reads and parses a program file from path.
func LoadProgram(path string) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return Program{}, fmt.Errorf("loader: open program file: %w", err)
	}
	defer f.Close()
	return ParseProgram(f)
}

// ParseProgram parses the program text format from r: strip comments and
// blank lines, the first surviving token is the starting address, every
// subsequent line is four integers `opcode a b c`.
func ParseProgram(r io.Reader) (Program, error) {
	lines, err := stripComments(r)
	if err != nil {
		return Program{}, err
	}
	if len(lines) == 0 {
		return Program{}, fmt.Errorf("loader: program file has no starting address")
	}

	start, err := parseInt(lines[0].text)
	if err != nil {
		return Program{}, fmt.Errorf("loader: line %d: starting address: %w", lines[0].lineNo, err)
	}

	instrs := make([]tomasulo.Instruction, 0, len(lines)-1)
	addr := start
	for _, ln := range lines[1:] {
		fields := strings.Fields(ln.text)
		if len(fields) != 4 {
			return Program{}, fmt.Errorf("loader: line %d: expected \"opcode a b c\", got %q", ln.lineNo, ln.text)
		}
		vals := make([]int, 4)
		for i, tok := range fields {
			v, err := parseInt(tok)
			if err != nil {
				return Program{}, fmt.Errorf("loader: line %d: field %d: %w", ln.lineNo, i+1, err)
			}
			vals[i] = v
		}
		op := tomasulo.Opcode(vals[0])
		if tomasulo.FamilyOf(op) < 0 {
			return Program{}, fmt.Errorf("loader: line %d: unknown opcode %d", ln.lineNo, vals[0])
		}
		instrs = append(instrs, tomasulo.NewInstruction(len(instrs), addr, op, vals[1], vals[2], vals[3]))
		addr++
	}

	return Program{StartAddr: start, Instructions: instrs}, nil
}

// LoadMemory reads and parses an optional memory seed file from path.
func LoadMemory(path string) (map[int]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open memory file: %w", err)
	}
	defer f.Close()
	return ParseMemory(f)
}

// ParseMemory parses the memory text format from r: `address value` pairs,
// one per line, values taken mod 2^16. Addresses outside the engine's word
// range are the engine's concern to ignore, not the loader's — this just
// returns what the file says.
func ParseMemory(r io.Reader) (map[int]int, error) {
	lines, err := stripComments(r)
	if err != nil {
		return nil, err
	}
	seed := make(map[int]int, len(lines))
	for _, ln := range lines {
		fields := strings.Fields(ln.text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("loader: line %d: expected \"address value\", got %q", ln.lineNo, ln.text)
		}
		addr, err := parseInt(fields[0])
		if err != nil {
			return nil, fmt.Errorf("loader: line %d: address: %w", ln.lineNo, err)
		}
		val, err := parseInt(fields[1])
		if err != nil {
			return nil, fmt.Errorf("loader: line %d: value: %w", ln.lineNo, err)
		}
		seed[addr] = val & 0xFFFF
	}
	return seed, nil
}

type sourceLine struct {
	lineNo int
	text   string
}

// stripComments drops blank lines and anything from a `#` or `//` marker
// onward, returning only the lines with content left plus their original
// 1-based line number (for error messages that point the user at the file).
func stripComments(r io.Reader) ([]sourceLine, error) {
	var out []sourceLine
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}
		if i := strings.Index(text, "#"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, sourceLine{lineNo: lineNo, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: read: %w", err)
	}
	return out, nil
}

func parseInt(tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", tok)
	}
	return v, nil
}
